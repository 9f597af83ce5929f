package notification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// History exposes a user's notifications. It is the only writer of the deleted flag.
type History struct {
	store  NotificationStore
	logger *slog.Logger
}

// NewHistory creates a history manager backed by store.
func NewHistory(store NotificationStore, opts ...Option) *History {
	o := newOptions(opts)
	return &History{
		store:  store,
		logger: o.logger,
	}
}

// List returns the user's non-deleted notifications in insertion order.
func (h *History) List(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	notifs, err := h.store.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return notifs, nil
}

// Clear soft-deletes every non-deleted notification of the user, one record at
// a time. It is not atomic: on a store error the records already cleared stay
// cleared.
func (h *History) Clear(ctx context.Context, userID uuid.UUID) error {
	notifs, err := h.List(ctx, userID)
	if err != nil {
		return err
	}

	for _, notif := range notifs {
		notif.Deleted = true
		if _, err := h.store.Save(ctx, notif); err != nil {
			return errors.Join(ErrStorage, err)
		}
	}

	if len(notifs) > 0 {
		h.logger.LogAttrs(ctx, slog.LevelInfo, "notification history cleared",
			logger.UserID(userID),
			logger.Count(len(notifs)),
			logger.Component("history"),
		)
	}
	return nil
}
