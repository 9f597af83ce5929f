package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/internal/notification"
)

func storeNotification(t *testing.T, store notification.NotificationStore, userID uuid.UUID, subject string, status notification.Status, deleted bool) notification.Notification {
	t.Helper()

	n, err := store.Save(context.Background(), notification.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Subject:     subject,
		Body:        subject + " body",
		ChannelType: notification.ChannelEmail,
		Status:      status,
		CreatedAt:   time.Now(),
		Deleted:     deleted,
	})
	require.NoError(t, err)
	return *n
}

func TestDispatcher_Retry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing preference", func(t *testing.T) {
		t.Parallel()

		d := newDispatcher(notification.NewMemoryPreferenceStore(), notification.NewMemoryNotificationStore(), new(MockChannel))
		assert.ErrorIs(t, d.Retry(ctx, uuid.New()), notification.ErrPreferenceNotFound)
	})

	t.Run("disabled preference rejects the whole sweep", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		userID := seedPreference(prefs, false, "user@example.com")

		notifs := new(MockNotificationStore)
		ch := new(MockChannel)

		err := newDispatcher(prefs, notifs, ch).Retry(ctx, userID)
		assert.ErrorIs(t, err, notification.ErrPreferenceDisabled)
		notifs.AssertNotCalled(t, "FindByUserAndStatus", mock.Anything, mock.Anything, mock.Anything)
		notifs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty failed set writes nothing", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		userID := seedPreference(prefs, true, "user@example.com")

		notifs := new(MockNotificationStore)
		notifs.On("FindByUserAndStatus", mock.Anything, userID, notification.StatusFailed).
			Return([]notification.Notification{}, nil)

		require.NoError(t, newDispatcher(prefs, notifs, new(MockChannel)).Retry(ctx, userID))
		notifs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("never touches deleted notifications", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		notifs := notification.NewMemoryNotificationStore()
		userID := seedPreference(prefs, true, "user@example.com")
		cleared := storeNotification(t, notifs, userID, "cleared", notification.StatusFailed, true)
		pending := storeNotification(t, notifs, userID, "pending", notification.StatusFailed, false)

		ch := new(MockChannel)
		ch.On("Send", mock.Anything, "user@example.com", "pending", "pending body").Return(nil).Once()

		require.NoError(t, newDispatcher(prefs, notifs, ch).Retry(ctx, userID))
		ch.AssertExpectations(t)

		all, err := notifs.FindByUser(ctx, userID, false)
		require.NoError(t, err)
		byID := map[uuid.UUID]notification.Notification{}
		for _, n := range all {
			byID[n.ID] = n
		}
		assert.Equal(t, notification.StatusFailed, byID[cleared.ID].Status)
		assert.True(t, byID[cleared.ID].Deleted)
		assert.Equal(t, notification.StatusSucceeded, byID[pending.ID].Status)
	})

	t.Run("one failure does not stop the sweep", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		notifs := notification.NewMemoryNotificationStore()
		userID := seedPreference(prefs, true, "user@example.com")
		first := storeNotification(t, notifs, userID, "first", notification.StatusFailed, false)
		second := storeNotification(t, notifs, userID, "second", notification.StatusFailed, false)
		third := storeNotification(t, notifs, userID, "third", notification.StatusFailed, false)

		var order []string
		ch := notification.ChannelFunc(func(ctx context.Context, to, subject, body string) error {
			order = append(order, subject)
			if subject == "second" {
				return errors.New("mailbox full")
			}
			return nil
		})

		require.NoError(t, newDispatcher(prefs, notifs, ch).Retry(ctx, userID))
		assert.Equal(t, []string{"first", "second", "third"}, order)

		failed, err := notifs.FindByUserAndStatus(ctx, userID, notification.StatusFailed)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.Equal(t, second.ID, failed[0].ID)

		succeeded, err := notifs.FindByUserAndStatus(ctx, userID, notification.StatusSucceeded)
		require.NoError(t, err)
		require.Len(t, succeeded, 2)
		assert.ElementsMatch(t, []uuid.UUID{first.ID, third.ID}, []uuid.UUID{succeeded[0].ID, succeeded[1].ID})
	})

	t.Run("failed attempts are still persisted", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		userID := seedPreference(prefs, true, "user@example.com")
		failed := notification.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Subject: "s",
			Body:    "b",
			Status:  notification.StatusFailed,
		}

		notifs := new(MockNotificationStore)
		notifs.On("FindByUserAndStatus", mock.Anything, userID, notification.StatusFailed).
			Return([]notification.Notification{failed}, nil)
		notifs.On("Save", mock.Anything, failed).Return(&failed, nil).Once()

		ch := new(MockChannel)
		ch.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bounced"))

		require.NoError(t, newDispatcher(prefs, notifs, ch).Retry(ctx, userID))
		notifs.AssertExpectations(t)
	})

	t.Run("succeeded notifications are not reselected", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		notifs := notification.NewMemoryNotificationStore()
		userID := seedPreference(prefs, true, "user@example.com")
		storeNotification(t, notifs, userID, "done", notification.StatusSucceeded, false)

		ch := new(MockChannel)
		require.NoError(t, newDispatcher(prefs, notifs, ch).Retry(ctx, userID))
		ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure on write propagates", func(t *testing.T) {
		t.Parallel()

		prefs := notification.NewMemoryPreferenceStore()
		userID := seedPreference(prefs, true, "user@example.com")
		failed := notification.Notification{ID: uuid.New(), UserID: userID, Status: notification.StatusFailed}

		notifs := new(MockNotificationStore)
		notifs.On("FindByUserAndStatus", mock.Anything, userID, notification.StatusFailed).
			Return([]notification.Notification{failed}, nil)
		notifs.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("deadlock"))

		ch := new(MockChannel)
		ch.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := newDispatcher(prefs, notifs, ch).Retry(ctx, userID)
		assert.ErrorIs(t, err, notification.ErrStorage)
	})
}
