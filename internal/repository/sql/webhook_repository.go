package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

const webhookColumns = "id, name, url, category, is_active, created_at, updated_at"

// WebhookRepository implements repository.WebhookStore on PostgreSQL.
type WebhookRepository struct {
	db *sql.DB
}

// NewWebhookRepository creates a new WebhookRepository instance.
func NewWebhookRepository(db *sql.DB) repository.WebhookStore {
	return &WebhookRepository{db: db}
}

// Create inserts a new webhook config.
func (r *WebhookRepository) Create(ctx context.Context, config *model.WebhookConfig) error {
	config.InitMeta()

	query := `INSERT INTO webhook_configs (id, name, url, category, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, config.ID, config.Name, config.URL, config.Category,
		config.IsActive, config.CreatedAt, config.UpdatedAt)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pqUniqueViolationErrCode {
			return &repository.UniqueConstraintError{Detail: pgError.Detail}
		}
		return fmt.Errorf("failed to insert webhook config: %w", err)
	}

	return nil
}

// FindByID retrieves a webhook config by its logical ID.
func (r *WebhookRepository) FindByID(ctx context.Context, id string) (*model.WebhookConfig, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_configs WHERE id = $1`

	config, err := scanWebhook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query webhook config: %w", err)
	}

	return config, nil
}

// List returns all webhook configs ordered by ID.
func (r *WebhookRepository) List(ctx context.Context) ([]*model.WebhookConfig, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_configs ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook configs: %w", err)
	}
	defer rows.Close()

	return collectWebhooks(rows)
}

// Update replaces the mutable fields of a webhook config.
func (r *WebhookRepository) Update(ctx context.Context, config *model.WebhookConfig) error {
	query := `UPDATE webhook_configs
	          SET name = $1, url = $2, category = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, config.Name, config.URL, config.Category, config.IsActive, config.ID)
	if err != nil {
		return fmt.Errorf("failed to update webhook config: %w", err)
	}

	return requireRowAffected(result)
}

// Delete removes a webhook config.
func (r *WebhookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM webhook_configs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete webhook config: %w", err)
	}

	return requireRowAffected(result)
}

// ResolveActive returns the configs among ids that are active and have a
// destination URL. IDs without a matching row are skipped.
func (r *WebhookRepository) ResolveActive(ctx context.Context, ids []string) ([]*model.WebhookConfig, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM webhook_configs
	          WHERE id IN (%s) AND is_active = TRUE AND url IS NOT NULL`,
		webhookColumns, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve webhook configs: %w", err)
	}
	defer rows.Close()

	return collectWebhooks(rows)
}

func requireRowAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanWebhook(row rowScanner) (*model.WebhookConfig, error) {
	var config model.WebhookConfig
	var url sql.NullString

	err := row.Scan(&config.ID, &config.Name, &url, &config.Category,
		&config.IsActive, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if url.Valid {
		config.URL = &url.String
	}

	return &config, nil
}

func collectWebhooks(rows *sql.Rows) ([]*model.WebhookConfig, error) {
	var configs []*model.WebhookConfig
	for rows.Next() {
		config, err := scanWebhook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webhook config: %w", err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return configs, nil
}
