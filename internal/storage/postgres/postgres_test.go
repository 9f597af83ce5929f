package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/internal/storage/postgres"
	"github.com/dmitrymomot/notifykit/pkg/pg"
)

// setupPool connects to TEST_PG_CONN_URL and applies the migrations.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connURL := os.Getenv("TEST_PG_CONN_URL")
	if connURL == "" {
		t.Skip("TEST_PG_CONN_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{
		ConnectionString: connURL,
		RetryAttempts:    1,
		MigrationsTable:  "schema_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, pg.Migrate(ctx, pool, cfg, postgres.Migrations, postgres.MigrationsDir, log))
	return pool
}

func TestPreferenceStore(t *testing.T) {
	pool := setupPool(t)
	store := postgres.NewPreferenceStore(pool)
	ctx := context.Background()
	userID := uuid.New()
	created := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("not found", func(t *testing.T) {
		_, err := store.FindByUser(ctx, userID)
		assert.ErrorIs(t, err, notification.ErrPreferenceNotFound)
	})

	original := notification.Preference{
		ID:             uuid.New(),
		UserID:         userID,
		Enabled:        true,
		ChannelType:    notification.ChannelEmail,
		ContactAddress: "user@example.com",
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	t.Run("insert", func(t *testing.T) {
		saved, err := store.Save(ctx, original)
		require.NoError(t, err)
		assert.Equal(t, original.ID, saved.ID)
		assert.True(t, saved.CreatedAt.Equal(created))

		found, err := store.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", found.ContactAddress)
		assert.Equal(t, notification.ChannelEmail, found.ChannelType)
	})

	t.Run("update keeps id and created_at", func(t *testing.T) {
		later := created.Add(time.Hour)
		update := original
		update.ID = uuid.New()
		update.Enabled = false
		update.CreatedAt = later
		update.UpdatedAt = later

		saved, err := store.Save(ctx, update)
		require.NoError(t, err)
		assert.Equal(t, original.ID, saved.ID)
		assert.False(t, saved.Enabled)
		assert.True(t, saved.CreatedAt.Equal(created))
		assert.True(t, saved.UpdatedAt.Equal(later))
	})
}

func TestNotificationStore(t *testing.T) {
	pool := setupPool(t)
	store := postgres.NewNotificationStore(pool)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)

	var saved []notification.Notification
	for i, status := range []notification.Status{notification.StatusSucceeded, notification.StatusFailed, notification.StatusFailed} {
		n, err := store.Save(ctx, notification.Notification{
			ID:          uuid.New(),
			UserID:      userID,
			Subject:     "subject",
			Body:        "body",
			ChannelType: notification.ChannelEmail,
			Status:      status,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		saved = append(saved, *n)
	}

	t.Run("lists in insertion order", func(t *testing.T) {
		all, err := store.FindByUser(ctx, userID, false)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i := range saved {
			assert.Equal(t, saved[i].ID, all[i].ID)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		failed, err := store.FindByUserAndStatus(ctx, userID, notification.StatusFailed)
		require.NoError(t, err)
		assert.Len(t, failed, 2)
	})

	t.Run("update status and deleted in place", func(t *testing.T) {
		n := saved[1]
		n.Status = notification.StatusSucceeded
		n.Deleted = true
		n.CreatedAt = base.Add(time.Hour)

		updated, err := store.Save(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusSucceeded, updated.Status)
		assert.True(t, updated.Deleted)
		assert.True(t, updated.CreatedAt.Equal(saved[1].CreatedAt))

		visible, err := store.FindByUser(ctx, userID, true)
		require.NoError(t, err)
		assert.Len(t, visible, 2)

		all, err := store.FindByUser(ctx, userID, false)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("unknown user yields empty list", func(t *testing.T) {
		none, err := store.FindByUser(ctx, uuid.New(), true)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
