package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/notifykit/internal/notification"
)

const notificationColumns = `id, user_id, subject, body, channel_type, status, created_at, deleted`

// NotificationStore is a notification.NotificationStore backed by the notifications table.
// Each Save is a single statement, so every write is atomic on its own.
type NotificationStore struct {
	db DBTX
}

func NewNotificationStore(db DBTX) *NotificationStore {
	return &NotificationStore{db: db}
}

// Save inserts the record or, when the id exists, updates status and deleted.
// Content fields and created_at are immutable.
func (s *NotificationStore) Save(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			deleted = EXCLUDED.deleted
		RETURNING `+notificationColumns,
		n.ID, n.UserID, n.Subject, n.Body, string(n.ChannelType), string(n.Status), n.CreatedAt, n.Deleted,
	)
	saved, err := scanNotification(row)
	if err != nil {
		return nil, fmt.Errorf("save notification: %w", err)
	}
	return saved, nil
}

func (s *NotificationStore) FindByUser(ctx context.Context, userID uuid.UUID, excludeDeleted bool) ([]notification.Notification, error) {
	return s.list(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT deleted)
		ORDER BY seq`,
		userID, excludeDeleted,
	)
}

func (s *NotificationStore) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status notification.Status) ([]notification.Notification, error) {
	return s.list(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 AND status = $2
		ORDER BY seq`,
		userID, string(status),
	)
}

func (s *NotificationStore) list(ctx context.Context, query string, args ...any) ([]notification.Notification, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (notification.Notification, error) {
		n, err := scanNotification(row)
		if err != nil {
			return notification.Notification{}, err
		}
		return *n, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	return result, nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n                   notification.Notification
		channelType, status string
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Subject, &n.Body, &channelType, &status, &n.CreatedAt, &n.Deleted); err != nil {
		return nil, err
	}
	n.ChannelType = notification.ChannelType(channelType)
	n.Status = notification.Status(status)
	return &n, nil
}
