package notification_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/internal/notification"
)

func TestService_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	notifs := notification.NewMemoryNotificationStore()

	var healthy atomic.Bool
	healthy.Store(true)
	var delivered []string
	ch := notification.ChannelFunc(func(ctx context.Context, to, subject, body string) error {
		if !healthy.Load() {
			return errors.New("channel down")
		}
		delivered = append(delivered, to)
		return nil
	})

	svc := notification.NewService(
		notification.NewMemoryPreferenceStore(),
		notifs,
		ch,
		notification.WithLogger(discardLogger()),
		notification.WithClock(newStepClock().Now),
	)
	userID := uuid.New()

	_, err := svc.Send(ctx, userID, "Hi", "body")
	require.ErrorIs(t, err, notification.ErrPreferenceNotFound)
	require.ErrorIs(t, svc.RetryFailed(ctx, userID), notification.ErrPreferenceNotFound)
	_, err = svc.GetPreference(ctx, userID)
	require.ErrorIs(t, err, notification.ErrPreferenceNotFound)
	assert.Zero(t, notifs.Len())

	pref, err := svc.UpsertPreference(ctx, notification.UpsertParams{
		UserID:         userID,
		Enabled:        false,
		ChannelType:    notification.ChannelEmail,
		ContactAddress: "user@example.com",
	})
	require.NoError(t, err)
	assert.False(t, pref.Enabled)
	assert.Equal(t, "user@example.com", pref.ContactInfo)

	_, err = svc.Send(ctx, userID, "Hi", "body")
	require.ErrorIs(t, err, notification.ErrPreferenceDisabled)
	require.ErrorIs(t, svc.RetryFailed(ctx, userID), notification.ErrPreferenceDisabled)
	assert.Zero(t, notifs.Len())

	pref, err = svc.SetPreferenceEnabled(ctx, userID, true)
	require.NoError(t, err)
	assert.True(t, pref.Enabled)

	sent, err := svc.Send(ctx, userID, "Hi", "body")
	require.NoError(t, err)
	assert.Equal(t, notification.StatusSucceeded, sent.Status)

	history, err := svc.ListHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, notification.StatusSucceeded, history[0].Status)

	healthy.Store(false)
	failed, err := svc.Send(ctx, userID, "Again", "body")
	require.NoError(t, err)
	assert.Equal(t, notification.StatusFailed, failed.Status)

	history, err = svc.ListHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, notification.StatusFailed, history[1].Status)

	healthy.Store(true)
	require.NoError(t, svc.RetryFailed(ctx, userID))

	history, err = svc.ListHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, v := range history {
		assert.Equal(t, notification.StatusSucceeded, v.Status)
	}
	assert.Equal(t, []string{"user@example.com", "user@example.com"}, delivered)

	require.NoError(t, svc.ClearHistory(ctx, userID))
	history, err = svc.ListHistory(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, 2, notifs.Len())
}

func TestNewNotificationView(t *testing.T) {
	t.Parallel()

	n := notification.Notification{
		ID:          uuid.New(),
		Subject:     "Welcome",
		Body:        "secret body",
		ChannelType: notification.ChannelEmail,
		Status:      notification.StatusFailed,
	}

	v := notification.NewNotificationView(n)
	assert.Equal(t, "Welcome", v.Subject)
	assert.Equal(t, notification.StatusFailed, v.Status)
	assert.Equal(t, notification.ChannelEmail, v.Type)
}

func TestParseChannelType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    notification.ChannelType
		wantErr bool
	}{
		{in: "EMAIL", want: notification.ChannelEmail},
		{in: " email ", want: notification.ChannelEmail},
		{in: "sms", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := notification.ParseChannelType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, notification.ErrInvalidChannelType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
