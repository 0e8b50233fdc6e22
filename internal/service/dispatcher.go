package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/metrics"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/routing"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/sqs"
)

const (
	// NoActiveWebhooksNote is stored as last_error when an event routes to
	// zero dispatchable destinations. Absence of subscribers is not an error.
	NoActiveWebhooksNote = "No active webhooks configured"

	// maxErrorBodyLen caps how much of a destination's response body is kept
	// in a failure string.
	maxErrorBodyLen = 100

	// destinationTimeout bounds each destination POST. The upstream design
	// left this unbounded; a fixed per-destination timeout is a deliberate
	// addition.
	destinationTimeout = 10 * time.Second

	// backgroundDispatchTimeout bounds a fire-and-forget dispatch spawned
	// from event creation.
	backgroundDispatchTimeout = 2 * time.Minute
)

// wireBody is the JSON body POSTed to each destination. The signature is
// computed over this exact serialization.
type wireBody struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	UserID     *string         `json:"user_id"`
	AccountID  *string         `json:"account_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// DispatchSummary tallies the outcome of a pending-events sweep.
type DispatchSummary struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Errors    int `json:"errors"`
}

// DeliveryResult reports one destination attempt of a test dispatch.
type DeliveryResult struct {
	WebhookID string  `json:"webhook_id"`
	Name      string  `json:"name"`
	Success   bool    `json:"success"`
	Error     *string `json:"error,omitempty"`
}

// Dispatcher delivers outgoing events to their routed webhook destinations,
// signing each payload and recording the aggregated outcome on the event row.
// Delivery is at-least-once; destinations must tolerate duplicates.
type Dispatcher struct {
	events     repository.EventStore
	webhooks   repository.WebhookStore
	signer     *Signer
	client     *http.Client
	deadLetter *sqs.DeadLetterPublisher
	dlqAfter   int
}

// NewDispatcher creates a Dispatcher. deadLetter may be nil, in which case
// repeatedly failing events are not mirrored anywhere.
func NewDispatcher(events repository.EventStore, webhooks repository.WebhookStore, signer *Signer, deadLetter *sqs.DeadLetterPublisher, dlqAfter int) *Dispatcher {
	return &Dispatcher{
		events:     events,
		webhooks:   webhooks,
		signer:     signer,
		client:     &http.Client{Timeout: destinationTimeout},
		deadLetter: deadLetter,
		dlqAfter:   dlqAfter,
	}
}

// DispatchOne delivers a single event to every routed destination and updates
// its stored status. It returns true when every destination accepted the
// delivery (or there were none), false otherwise. Partial success is recorded
// as an overall error; per-destination delivery state is not tracked beyond
// the aggregated error string.
func (d *Dispatcher) DispatchOne(ctx context.Context, event *model.Event) bool {
	destinations := d.resolveDestinations(ctx, event.EventType)

	if len(destinations) == 0 {
		note := NoActiveWebhooksNote
		if err := d.events.MarkSent(ctx, event.ID, &note); err != nil {
			slog.Error("failed to mark event sent", slog.String("event_id", event.ID.String()), slog.Any("err", err))
			return false
		}
		metrics.EventsSent.Inc()
		return true
	}

	body, err := json.Marshal(wireBody{
		EventID:    event.ID.String(),
		EventType:  event.EventType,
		UserID:     event.UserID,
		AccountID:  event.AccountID,
		OccurredAt: event.CreatedAt,
		Payload:    event.Payload,
	})
	if err != nil {
		d.recordFailure(ctx, event, fmt.Sprintf("marshal wire body: %v", err))
		return false
	}

	signature := d.signer.Sign(body)

	var failures []string
	for _, destination := range destinations {
		if err := d.deliver(ctx, destination, event.EventType, body, signature); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", destination.Name, err.Error()))
		}
	}

	if len(failures) > 0 {
		d.recordFailure(ctx, event, strings.Join(failures, "; "))
		return false
	}

	if err := d.events.MarkSent(ctx, event.ID, nil); err != nil {
		slog.Error("failed to mark event sent", slog.String("event_id", event.ID.String()), slog.Any("err", err))
		return false
	}
	metrics.EventsSent.Inc()
	return true
}

// DispatchBackground fires DispatchOne without the caller waiting. Panics and
// errors are logged and swallowed; the only observable effect is the event's
// persisted status. If the process dies first, a later pending sweep picks
// the event up again.
func (d *Dispatcher) DispatchBackground(event *model.Event) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in background dispatch", slog.String("event_id", event.ID.String()), slog.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundDispatchTimeout)
		defer cancel()

		d.DispatchOne(ctx, event)
	}()
}

// DispatchPending sweeps up to 100 oldest pending events and dispatches them
// sequentially. Intended to be driven by an external scheduler or the
// in-process sweep worker.
func (d *Dispatcher) DispatchPending(ctx context.Context) (DispatchSummary, error) {
	events, err := d.events.ListPending(ctx, 100)
	if err != nil {
		return DispatchSummary{}, fmt.Errorf("failed to list pending events: %w", err)
	}

	summary := DispatchSummary{Processed: len(events)}
	for _, event := range events {
		if d.DispatchOne(ctx, event) {
			summary.Sent++
		} else {
			summary.Errors++
		}
	}

	if summary.Processed > 0 {
		slog.Info("pending sweep finished",
			slog.Int("processed", summary.Processed),
			slog.Int("sent", summary.Sent),
			slog.Int("errors", summary.Errors))
	}

	return summary, nil
}

// SendTest delivers a synthetic test.webhook payload to one destination and
// reports the outcome without touching the event store.
func (d *Dispatcher) SendTest(ctx context.Context, destination *model.WebhookConfig) DeliveryResult {
	body, err := json.Marshal(wireBody{
		EventID:    "test",
		EventType:  "test.webhook",
		OccurredAt: time.Now(),
		Payload:    json.RawMessage(`{"message":"Test webhook delivery"}`),
	})
	if err != nil {
		msg := err.Error()
		return DeliveryResult{WebhookID: destination.ID, Name: destination.Name, Error: &msg}
	}

	result := DeliveryResult{WebhookID: destination.ID, Name: destination.Name}
	if err := d.deliver(ctx, destination, "test.webhook", body, d.signer.Sign(body)); err != nil {
		msg := err.Error()
		result.Error = &msg
		return result
	}
	result.Success = true
	return result
}

// resolveDestinations routes the event type and resolves the webhook IDs to
// dispatchable configs. A registry lookup failure is treated as "no
// destinations" rather than propagated.
func (d *Dispatcher) resolveDestinations(ctx context.Context, eventType string) []*model.WebhookConfig {
	ids := routing.RouteEvent(eventType)

	destinations, err := d.webhooks.ResolveActive(ctx, ids)
	if err != nil {
		slog.Error("webhook registry lookup failed", slog.String("event_type", eventType), slog.Any("err", err))
		return nil
	}
	return destinations
}

// deliver POSTs the signed body to one destination. A nil return means the
// destination answered 2xx.
func (d *Dispatcher) deliver(ctx context.Context, destination *model.WebhookConfig, eventType string, body []byte, signature string) error {
	metrics.DeliveryAttempts.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *destination.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Autofloy-Signature", signature)
	req.Header.Set("X-Autofloy-Event-Type", eventType)
	req.Header.Set("X-Autofloy-Webhook-Id", destination.ID)

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.DeliveryFailures.Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.DeliveryFailures.Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return fmt.Errorf("HTTP %d - %s", resp.StatusCode, string(snippet))
	}

	return nil
}

func (d *Dispatcher) recordFailure(ctx context.Context, event *model.Event, aggregated string) {
	if err := d.events.MarkError(ctx, event.ID, aggregated); err != nil {
		slog.Error("failed to mark event error", slog.String("event_id", event.ID.String()), slog.Any("err", err))
		return
	}
	metrics.EventsFailed.Inc()

	retryCount := event.RetryCount + 1
	slog.Error("event dispatch failed",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.Int("retry_count", retryCount),
		slog.String("last_error", model.TruncateError(aggregated)))

	if d.deadLetter != nil && d.dlqAfter > 0 && retryCount >= d.dlqAfter {
		msg := sqs.DeadLetterMessage{
			EventID:    event.ID.String(),
			EventType:  event.EventType,
			RetryCount: retryCount,
			LastError:  model.TruncateError(aggregated),
		}
		if err := d.deadLetter.Publish(ctx, msg); err != nil {
			slog.Error("failed to publish dead letter", slog.String("event_id", event.ID.String()), slog.Any("err", err))
		}
	}
}
