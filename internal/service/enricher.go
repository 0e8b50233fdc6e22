package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/plan"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
)

// Enricher merges subscriber and site context into event payloads before they
// are persisted. Lookup failures degrade payload richness only; enrichment
// never fails event creation.
type Enricher struct {
	users    repository.UserStore
	settings repository.SettingsStore
}

// NewEnricher creates an Enricher backed by the given read-only stores.
func NewEnricher(users repository.UserStore, settings repository.SettingsStore) *Enricher {
	return &Enricher{
		users:    users,
		settings: settings,
	}
}

type userContext struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type subscriptionContext struct {
	Plan                  string  `json:"plan"`
	IsTrialActive         bool    `json:"is_trial_active"`
	TrialEndDate          *string `json:"trial_end_date"`
	SubscriptionStartedAt *string `json:"subscription_started_at"`
	SubscriptionEndsAt    *string `json:"subscription_ends_at"`
}

type siteContext struct {
	CompanyName  string `json:"company_name"`
	WebsiteURL   string `json:"website_url"`
	SupportEmail string `json:"support_email"`
}

// Enrich returns the payload augmented with user, subscription, plan_limits
// and site_context sub-objects where the lookups succeed.
func (e *Enricher) Enrich(ctx context.Context, userID *string, payload map[string]interface{}) json.RawMessage {
	enriched := make(map[string]interface{}, len(payload)+4)
	for k, v := range payload {
		enriched[k] = v
	}

	if userID != nil && *userID != "" {
		e.mergeUserContext(ctx, *userID, enriched)
	}

	if settings, err := e.settings.Get(ctx); err == nil {
		enriched["site_context"] = siteContext{
			CompanyName:  settings.CompanyName,
			WebsiteURL:   settings.WebsiteURL,
			SupportEmail: settings.SupportEmail,
		}
	} else {
		slog.Info("site settings lookup skipped", slog.Any("err", err))
	}

	data, err := json.Marshal(enriched)
	if err != nil {
		// Unmarshalable values came from the caller's payload; fall back to
		// persisting it untouched.
		slog.Error("failed to marshal enriched payload", slog.Any("err", err))
		if data, err = json.Marshal(payload); err != nil {
			return json.RawMessage(`{}`)
		}
	}
	return data
}

func (e *Enricher) mergeUserContext(ctx context.Context, userID string, enriched map[string]interface{}) {
	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		slog.Info("user lookup skipped during enrichment", slog.String("user_id", userID), slog.Any("err", err))
		return
	}

	enriched["user"] = userContext{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	enriched["subscription"] = subscriptionContext{
		Plan:                  user.SubscriptionPlan,
		IsTrialActive:         user.IsTrialActive,
		TrialEndDate:          formatTime(user.TrialEndDate),
		SubscriptionStartedAt: formatTime(user.SubscriptionStartedAt),
		SubscriptionEndsAt:    formatTime(user.SubscriptionEndsAt),
	}
	enriched["plan_limits"] = plan.LimitsFor(user.SubscriptionPlan)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
