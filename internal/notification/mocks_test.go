package notification_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/notifykit/internal/notification"
)

// MockChannel for testing delivery outcomes
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockNotificationStore for asserting exact writes
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Save(ctx context.Context, notif notification.Notification) (*notification.Notification, error) {
	args := m.Called(ctx, notif)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationStore) FindByUser(ctx context.Context, userID uuid.UUID, excludeDeleted bool) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, excludeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationStore) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status notification.Status) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

// MockPreferenceStore for simulating storage failures
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) FindByUser(ctx context.Context, userID uuid.UUID) (*notification.Preference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Preference), args.Error(1)
}

func (m *MockPreferenceStore) Save(ctx context.Context, pref notification.Preference) (*notification.Preference, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Preference), args.Error(1)
}

// stepClock advances one second on every reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedPreference(prefs *notification.MemoryPreferenceStore, enabled bool, address string) uuid.UUID {
	userID := uuid.New()
	_, err := prefs.Save(context.Background(), notification.Preference{
		ID:             uuid.New(),
		UserID:         userID,
		Enabled:        enabled,
		ChannelType:    notification.ChannelEmail,
		ContactAddress: address,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		panic(err)
	}
	return userID
}
