package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
)

// UserRepository implements repository.UserStore on PostgreSQL. The service
// only ever reads users; account management lives elsewhere.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *sql.DB) repository.UserStore {
	return &UserRepository{db: db}
}

// FindByID retrieves a user with their subscription fields.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, display_name, subscription_plan, is_trial_active,
	                 trial_end_date, subscription_started_at, subscription_ends_at
	          FROM users WHERE id = $1`

	var user model.User
	var trialEnd, subStart, subEnd sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.SubscriptionPlan,
		&user.IsTrialActive, &trialEnd, &subStart, &subEnd,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if trialEnd.Valid {
		user.TrialEndDate = &trialEnd.Time
	}
	if subStart.Valid {
		user.SubscriptionStartedAt = &subStart.Time
	}
	if subEnd.Valid {
		user.SubscriptionEndsAt = &subEnd.Time
	}

	return &user, nil
}
