package notification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Retry re-attempts delivery of every failed, non-deleted notification of the
// user, in store order, once each. A delivery failure of one record does not
// stop the sweep. The whole sweep is rejected up front when the preference is
// missing or disabled. A store error aborts the sweep; records already updated
// stay updated, so running it again is safe.
func (d *Dispatcher) Retry(ctx context.Context, userID uuid.UUID) error {
	pref, err := d.allowed(ctx, userID)
	if err != nil {
		return err
	}

	candidates, err := d.store.FindByUserAndStatus(ctx, userID, StatusFailed)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	var attempted, recovered int
	for _, notif := range candidates {
		// Cleared notifications must never be resurrected.
		if !notif.Failed() {
			continue
		}

		attempted++
		notif.Status = d.deliver(ctx, pref, notif.Subject, notif.Body)
		if notif.Status == StatusSucceeded {
			recovered++
		}

		if _, err := d.store.Save(context.WithoutCancel(ctx), notif); err != nil {
			return errors.Join(ErrStorage, err)
		}
	}

	if attempted > 0 {
		d.logger.LogAttrs(ctx, slog.LevelInfo, "retry sweep finished",
			logger.UserID(userID),
			slog.Int("attempted", attempted),
			slog.Int("recovered", recovered),
			logger.Component("retry"),
		)
	}
	return nil
}
