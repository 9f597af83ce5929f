package notification

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MemoryPreferenceStore is an in-memory PreferenceStore.
// Suitable for development and testing.
type MemoryPreferenceStore struct {
	preferences map[uuid.UUID]Preference // userID -> preference
	mu          sync.RWMutex
}

// NewMemoryPreferenceStore creates an empty in-memory preference store.
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{
		preferences: make(map[uuid.UUID]Preference),
	}
}

func (s *MemoryPreferenceStore) FindByUser(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.preferences[userID]
	if !ok {
		return nil, ErrPreferenceNotFound
	}
	return &pref, nil
}

func (s *MemoryPreferenceStore) Save(ctx context.Context, pref Preference) (*Preference, error) {
	if pref.UserID == uuid.Nil {
		return nil, errors.New("user ID is required")
	}
	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One record per user: keep the identity of the stored record.
	if existing, ok := s.preferences[pref.UserID]; ok {
		pref.ID = existing.ID
		pref.CreatedAt = existing.CreatedAt
	}
	s.preferences[pref.UserID] = pref
	return &pref, nil
}

// MemoryNotificationStore is an in-memory NotificationStore that keeps insertion order.
// Suitable for development and testing.
type MemoryNotificationStore struct {
	notifications []Notification
	index         map[uuid.UUID]int // notification ID -> position
	mu            sync.RWMutex
}

// NewMemoryNotificationStore creates an empty in-memory notification store.
func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{
		index: make(map[uuid.UUID]int),
	}
}

func (s *MemoryNotificationStore) Save(ctx context.Context, notif Notification) (*Notification, error) {
	if notif.ID == uuid.Nil || notif.UserID == uuid.Nil {
		return nil, errors.Join(ErrInvalidNotification, errors.New("notification and user IDs are required"))
	}
	if !notif.Status.Valid() {
		return nil, errors.Join(ErrInvalidNotification, errors.New("status must be terminal"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[notif.ID]; ok {
		// created_at is immutable
		notif.CreatedAt = s.notifications[i].CreatedAt
		s.notifications[i] = notif
		return &notif, nil
	}

	s.index[notif.ID] = len(s.notifications)
	s.notifications = append(s.notifications, notif)
	return &notif, nil
}

func (s *MemoryNotificationStore) FindByUser(ctx context.Context, userID uuid.UUID, excludeDeleted bool) ([]Notification, error) {
	return s.filter(func(n Notification) bool {
		return n.UserID == userID && !(excludeDeleted && n.Deleted)
	}), nil
}

func (s *MemoryNotificationStore) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status Status) ([]Notification, error) {
	return s.filter(func(n Notification) bool {
		return n.UserID == userID && n.Status == status
	}), nil
}

// Len returns the number of stored notifications, deleted ones included.
func (s *MemoryNotificationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notifications)
}

func (s *MemoryNotificationStore) filter(keep func(Notification) bool) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Notification{}
	for _, n := range s.notifications {
		if keep(n) {
			result = append(result, n)
		}
	}
	return result
}
