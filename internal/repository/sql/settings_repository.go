package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
)

// SettingsRepository implements repository.SettingsStore on PostgreSQL.
// site_settings holds at most one row.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository instance.
func NewSettingsRepository(db *sql.DB) repository.SettingsStore {
	return &SettingsRepository{db: db}
}

// Get returns the site settings row, or repository.ErrNotFound if none exists.
func (r *SettingsRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	query := `SELECT company_name, website_url, support_email FROM site_settings LIMIT 1`

	var settings model.SiteSettings
	err := r.db.QueryRowContext(ctx, query).Scan(&settings.CompanyName, &settings.WebsiteURL, &settings.SupportEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query site settings: %w", err)
	}

	return &settings, nil
}
