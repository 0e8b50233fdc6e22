package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the delivery status of an outgoing event.
type EventStatus string

const (
	// EventStatusPending indicates the event has been created but not yet dispatched
	EventStatusPending EventStatus = "pending"
	// EventStatusSent indicates the event was delivered to every destination
	EventStatusSent EventStatus = "sent"
	// EventStatusError indicates at least one destination delivery failed
	EventStatusError EventStatus = "error"
)

// MaxLastErrorLen caps the stored last_error column. Longer aggregated
// error strings are truncated, never rejected.
const MaxLastErrorLen = 500

// Event represents an outgoing webhook event.
type Event struct {
	ID         uuid.UUID
	EventType  string
	UserID     *string
	AccountID  *string
	Payload    json.RawMessage
	Status     EventStatus
	RetryCount int
	LastError  *string
	CreatedAt  time.Time
	SentAt     *time.Time
}

// InitMeta initializes the event metadata including ID, timestamp and status.
func (e *Event) InitMeta() {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	if e.Status == "" {
		e.Status = EventStatusPending
	}
}

// TruncateError shortens an aggregated error string to MaxLastErrorLen.
func TruncateError(s string) string {
	if len(s) > MaxLastErrorLen {
		return s[:MaxLastErrorLen]
	}
	return s
}
