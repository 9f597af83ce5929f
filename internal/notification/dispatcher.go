package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Dispatcher sends notifications and records their outcome.
// Together with Retry it is the only writer of notification status.
type Dispatcher struct {
	preferences *PreferenceManager
	store       NotificationStore
	channel     Channel
	logger      *slog.Logger
	now         func() time.Time
	timeout     time.Duration
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(preferences *PreferenceManager, store NotificationStore, channel Channel, opts ...Option) *Dispatcher {
	o := newOptions(opts)
	return &Dispatcher{
		preferences: preferences,
		store:       store,
		channel:     channel,
		logger:      o.logger,
		now:         o.now,
		timeout:     o.deliveryTimeout,
	}
}

// Dispatch delivers a message to the user's contact address and persists exactly
// one notification with the outcome. Delivery failures are recorded as
// StatusFailed and are not returned. Nothing is written when the preference is
// missing or disabled.
func (d *Dispatcher) Dispatch(ctx context.Context, userID uuid.UUID, subject, body string) (*Notification, error) {
	pref, err := d.allowed(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := d.deliver(ctx, pref, subject, body)

	notif, err := d.store.Save(context.WithoutCancel(ctx), Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Subject:     subject,
		Body:        body,
		ChannelType: pref.ChannelType,
		Status:      status,
		CreatedAt:   d.now(),
	})
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
		logger.NotificationID(notif.ID),
		logger.UserID(userID),
		logger.Status(string(notif.Status)),
		logger.Component("dispatcher"),
	)
	return notif, nil
}

// allowed resolves the preference and rejects disabled users.
func (d *Dispatcher) allowed(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	pref, err := d.preferences.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !pref.Enabled {
		return nil, ErrPreferenceDisabled
	}
	return pref, nil
}

// deliver makes a single bounded channel call and maps the result to a status.
func (d *Dispatcher) deliver(ctx context.Context, pref *Preference, subject, body string) Status {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.channel.Send(ctx, pref.ContactAddress, subject, body)
	if err == nil {
		return StatusSucceeded
	}

	err = errors.Join(ErrDeliveryFailed, err)
	if pref.ContactAddress == "" {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "notification not delivered: missing contact address",
			logger.UserID(pref.UserID),
			logger.Error(err),
			logger.Component("dispatcher"),
		)
		return StatusFailed
	}

	d.logger.LogAttrs(ctx, slog.LevelWarn, "notification not delivered",
		logger.UserID(pref.UserID),
		logger.Destination(pref.ContactAddress),
		logger.Error(err),
		logger.Component("dispatcher"),
	)
	return StatusFailed
}
