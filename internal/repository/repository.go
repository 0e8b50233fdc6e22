// Package repository defines the storage contracts consumed by the dispatch
// service. Implementations live in the sql subpackage.
package repository

import (
	"context"
	"errors"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("resource not found")
)

// EventStore manages outgoing event rows. Status mutations are restricted to
// the transitions the dispatcher performs.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// List returns events matching the query ordered by created_at DESC,
	// along with the total number of matching rows ignoring limit/offset.
	List(ctx context.Context, query Query) ([]*model.Event, int, error)
	// ListPending returns up to limit oldest pending events, created_at ASC.
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	// MarkSent sets status=sent and sent_at. lastError is nil on a clean
	// dispatch or the benign no-destinations note.
	MarkSent(ctx context.Context, id uuid.UUID, lastError *string) error
	// MarkError sets status=error, stores the truncated error string and
	// increments retry_count.
	MarkError(ctx context.Context, id uuid.UUID, lastError string) error
	// ResetPending sets status=pending and clears last_error. retry_count is
	// left untouched; it is cumulative across attempts.
	ResetPending(ctx context.Context, id uuid.UUID) error
}

// WebhookStore manages webhook destination configs.
type WebhookStore interface {
	Create(ctx context.Context, config *model.WebhookConfig) error
	FindByID(ctx context.Context, id string) (*model.WebhookConfig, error)
	List(ctx context.Context) ([]*model.WebhookConfig, error)
	Update(ctx context.Context, config *model.WebhookConfig) error
	Delete(ctx context.Context, id string) error
	// ResolveActive returns the configs among ids that are active and have a
	// URL. Missing IDs are silently skipped.
	ResolveActive(ctx context.Context, ids []string) ([]*model.WebhookConfig, error)
}

// UserStore is the read-only subscriber lookup used by payload enrichment.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// SettingsStore is the read-only single-row site settings lookup.
type SettingsStore interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
}

// UniqueConstraintError represents a database unique constraint violation.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
