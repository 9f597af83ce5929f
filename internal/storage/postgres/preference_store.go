package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/pkg/pg"
)

const preferenceColumns = `id, user_id, enabled, channel_type, contact_address, created_at, updated_at`

// PreferenceStore is a notification.PreferenceStore backed by the notification_preferences table.
type PreferenceStore struct {
	db DBTX
}

func NewPreferenceStore(db DBTX) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func (s *PreferenceStore) FindByUser(ctx context.Context, userID uuid.UUID) (*notification.Preference, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM notification_preferences WHERE user_id = $1`,
		userID,
	)
	pref, err := scanPreference(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, notification.ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("find preference: %w", err)
	}
	return pref, nil
}

// Save upserts by user id. On conflict the stored id and created_at are kept.
func (s *PreferenceStore) Save(ctx context.Context, pref notification.Preference) (*notification.Preference, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO notification_preferences (`+preferenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			channel_type = EXCLUDED.channel_type,
			contact_address = EXCLUDED.contact_address,
			updated_at = EXCLUDED.updated_at
		RETURNING `+preferenceColumns,
		pref.ID, pref.UserID, pref.Enabled, string(pref.ChannelType), pref.ContactAddress, pref.CreatedAt, pref.UpdatedAt,
	)
	saved, err := scanPreference(row)
	if err != nil {
		return nil, fmt.Errorf("save preference: %w", err)
	}
	return saved, nil
}

func scanPreference(row pgx.Row) (*notification.Preference, error) {
	var (
		p           notification.Preference
		channelType string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Enabled, &channelType, &p.ContactAddress, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ChannelType = notification.ChannelType(channelType)
	return &p, nil
}
