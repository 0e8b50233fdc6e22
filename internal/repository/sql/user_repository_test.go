package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	reposql "github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "display_name", "subscription_plan", "is_trial_active", "trial_end_date", "subscription_started_at", "subscription_ends_at"}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := reposql.NewUserRepository(db)
	ctx := context.Background()

	t.Run("successful find", func(t *testing.T) {
		started := time.Now().Add(-30 * 24 * time.Hour)

		rows := sqlmock.NewRows(userColumns).
			AddRow("u1", "owner@example.test", "Store Owner", "business", false, nil, started, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs("u1").
			WillReturnRows(rows)

		user, err := repo.FindByID(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "business", user.SubscriptionPlan)
		assert.False(t, user.IsTrialActive)
		assert.Nil(t, user.TrialEndDate)
		require.NotNil(t, user.SubscriptionStartedAt)
		assert.WithinDuration(t, started, *user.SubscriptionStartedAt, time.Second)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettingsRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := reposql.NewSettingsRepository(db)
	ctx := context.Background()

	t.Run("successful get", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"company_name", "website_url", "support_email"}).
			AddRow("Autofloy", "https://autofloy.example.test", "support@example.test")

		mock.ExpectQuery("SELECT (.+) FROM site_settings").
			WillReturnRows(rows)

		settings, err := repo.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Autofloy", settings.CompanyName)
		assert.Equal(t, "support@example.test", settings.SupportEmail)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table returns not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM site_settings").
			WillReturnRows(sqlmock.NewRows([]string{"company_name", "website_url", "support_email"}))

		_, err := repo.Get(ctx)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
