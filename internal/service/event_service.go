package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/metrics"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/google/uuid"
)

// ErrValidation is returned when a request is missing required fields. The
// HTTP layer maps it to a 400 response.
var ErrValidation = errors.New("validation failed")

// EventService implements the create/retry/list/test operations of the
// webhook-events API on top of the event store and the dispatcher.
type EventService struct {
	events     repository.EventStore
	webhooks   repository.WebhookStore
	enricher   *Enricher
	dispatcher *Dispatcher
}

// NewEventService creates an EventService.
func NewEventService(events repository.EventStore, webhooks repository.WebhookStore, enricher *Enricher, dispatcher *Dispatcher) *EventService {
	return &EventService{
		events:     events,
		webhooks:   webhooks,
		enricher:   enricher,
		dispatcher: dispatcher,
	}
}

// Create validates and persists a new outgoing event with an enriched
// payload, then schedules its dispatch in the background. The returned event
// is already stored; dispatch success or failure never affects this call.
func (s *EventService) Create(ctx context.Context, eventType string, userID, accountID *string, payload map[string]interface{}) (*model.Event, error) {
	if eventType == "" {
		return nil, fmt.Errorf("%w: event_type is required", ErrValidation)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrValidation)
	}

	event := &model.Event{
		EventType: eventType,
		UserID:    normalizeID(userID),
		AccountID: normalizeID(accountID),
		Payload:   s.enricher.Enrich(ctx, userID, payload),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	metrics.EventsCreated.Inc()

	slog.Info("event created",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType))

	s.dispatcher.DispatchBackground(event)

	return event, nil
}

// Retry re-queues one event for dispatch: status back to pending, last_error
// cleared. The cumulative retry_count is deliberately left untouched.
func (s *EventService) Retry(ctx context.Context, eventID uuid.UUID) error {
	if err := s.events.ResetPending(ctx, eventID); err != nil {
		return fmt.Errorf("failed to reset event: %w", err)
	}

	slog.Info("event queued for retry", slog.String("event_id", eventID.String()))
	return nil
}

// List returns events matching the query, newest first, with the total count
// of matching rows.
func (s *EventService) List(ctx context.Context, query repository.Query) ([]*model.Event, int, error) {
	return s.events.List(ctx, query)
}

// DispatchPending runs one synchronous sweep over pending events.
func (s *EventService) DispatchPending(ctx context.Context) (DispatchSummary, error) {
	return s.dispatcher.DispatchPending(ctx)
}

// TestWebhooks sends a synthetic test.webhook payload to the named webhook,
// or to every dispatchable webhook when webhookID is empty, and reports the
// per-destination outcomes.
func (s *EventService) TestWebhooks(ctx context.Context, webhookID string) ([]DeliveryResult, error) {
	var targets []*model.WebhookConfig

	if webhookID != "" {
		config, err := s.webhooks.FindByID(ctx, webhookID)
		if err != nil {
			return nil, fmt.Errorf("failed to load webhook config: %w", err)
		}
		targets = append(targets, config)
	} else {
		configs, err := s.webhooks.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list webhook configs: %w", err)
		}
		for _, config := range configs {
			if config.Dispatchable() {
				targets = append(targets, config)
			}
		}
	}

	results := make([]DeliveryResult, 0, len(targets))
	for _, target := range targets {
		if !target.Dispatchable() {
			msg := "webhook is inactive or has no URL"
			results = append(results, DeliveryResult{WebhookID: target.ID, Name: target.Name, Error: &msg})
			continue
		}
		results = append(results, s.dispatcher.SendTest(ctx, target))
	}

	return results, nil
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
