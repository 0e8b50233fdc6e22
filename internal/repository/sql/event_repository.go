package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/google/uuid"
)

const eventColumns = "id, event_type, user_id, account_id, payload, status, retry_count, last_error, created_at, sent_at"

// EventRepository implements repository.EventStore on PostgreSQL.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository instance.
func NewEventRepository(db *sql.DB) repository.EventStore {
	return &EventRepository{db: db}
}

// Create inserts a new outgoing event into the database.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	event.InitMeta()

	query := `INSERT INTO events (id, event_type, user_id, account_id, payload, status, retry_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, event.ID, event.EventType, event.UserID, event.AccountID,
		event.Payload, event.Status, event.RetryCount, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// FindByID retrieves a single event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	event, err := scanEvent(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return event, nil
}

// List retrieves events ordered by creation time descending, newest first,
// along with the total count of rows matching the filters.
func (r *EventRepository) List(ctx context.Context, query repository.Query) ([]*model.Event, int, error) {
	var where strings.Builder
	var args []interface{}

	where.WriteString(" WHERE 1=1")
	for _, field := range []repository.QueryField{repository.StatusField, repository.EventTypeField} {
		if val, ok := query.Values[field]; ok {
			args = append(args, val)
			fmt.Fprintf(&where, " AND %s = $%d", field, len(args))
		}
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM events" + where.String()
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, query.Offset)
	offsetPos := len(args)

	listQuery := fmt.Sprintf("SELECT %s FROM events%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		eventColumns, where.String(), limitPos, offsetPos)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListPending returns up to limit oldest pending events, created_at ascending.
func (r *EventRepository) ListPending(ctx context.Context, limit int) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE status = $1
	          ORDER BY created_at ASC
	          LIMIT $2`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, model.EventStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// MarkSent records a fully successful dispatch.
func (r *EventRepository) MarkSent(ctx context.Context, id uuid.UUID, lastError *string) error {
	query := `UPDATE events SET status = $1, sent_at = CURRENT_TIMESTAMP, last_error = $2 WHERE id = $3`

	return r.execOnEvent(ctx, query, model.EventStatusSent, lastError, id)
}

// MarkError records a failed dispatch attempt and increments retry_count.
func (r *EventRepository) MarkError(ctx context.Context, id uuid.UUID, lastError string) error {
	query := `UPDATE events SET status = $1, last_error = $2, retry_count = retry_count + 1 WHERE id = $3`

	return r.execOnEvent(ctx, query, model.EventStatusError, model.TruncateError(lastError), id)
}

// ResetPending re-queues an event for dispatch, clearing last_error but
// keeping the cumulative retry_count.
func (r *EventRepository) ResetPending(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE events SET status = $1, last_error = NULL WHERE id = $2`

	return r.execOnEvent(ctx, query, model.EventStatusPending, id)
}

func (r *EventRepository) execOnEvent(ctx context.Context, query string, args ...interface{}) error {
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	var userID, accountID, lastError sql.NullString
	var sentAt sql.NullTime

	err := row.Scan(&event.ID, &event.EventType, &userID, &accountID, &event.Payload,
		&event.Status, &event.RetryCount, &lastError, &event.CreatedAt, &sentAt)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		event.UserID = &userID.String
	}
	if accountID.Valid {
		event.AccountID = &accountID.String
	}
	if lastError.Valid {
		event.LastError = &lastError.String
	}
	if sentAt.Valid {
		event.SentAt = &sentAt.Time
	}

	return &event, nil
}

func collectEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
