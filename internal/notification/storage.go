package notification

import (
	"context"

	"github.com/google/uuid"
)

// PreferenceStore persists preferences.
type PreferenceStore interface {
	// FindByUser returns the user's preference or ErrPreferenceNotFound.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Preference, error)

	// Save inserts or updates the preference, keyed by user.
	Save(ctx context.Context, pref Preference) (*Preference, error)
}

// NotificationStore persists notifications.
// Listing methods return records in insertion order.
type NotificationStore interface {
	// Save inserts the notification or updates it in place by ID.
	Save(ctx context.Context, notif Notification) (*Notification, error)

	// FindByUser returns the user's notifications, without soft-deleted ones when excludeDeleted is set.
	FindByUser(ctx context.Context, userID uuid.UUID, excludeDeleted bool) ([]Notification, error)

	// FindByUserAndStatus returns the user's notifications with the given status, deleted ones included.
	FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status Status) ([]Notification, error)
}

// Channel delivers a message to a destination address.
// Send blocks until delivery resolves and should honor ctx cancellation.
type Channel interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ChannelFunc adapts a function to the Channel interface.
type ChannelFunc func(ctx context.Context, to, subject, body string) error

func (f ChannelFunc) Send(ctx context.Context, to, subject, body string) error {
	return f(ctx, to, subject, body)
}
