package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PreferenceView is the caller-facing shape of a preference.
type PreferenceView struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	Type        ChannelType `json:"type"`
	Enabled     bool        `json:"enabled"`
	ContactInfo string      `json:"contactInfo"`
}

// NotificationView is the caller-facing shape of a notification.
type NotificationView struct {
	Subject   string      `json:"subject"`
	CreatedOn time.Time   `json:"createdOn"`
	Status    Status      `json:"status"`
	Type      ChannelType `json:"type"`
}

// NewPreferenceView builds a view from a preference.
func NewPreferenceView(p Preference) PreferenceView {
	return PreferenceView{
		ID:          p.ID,
		UserID:      p.UserID,
		Type:        p.ChannelType,
		Enabled:     p.Enabled,
		ContactInfo: p.ContactAddress,
	}
}

// NewNotificationView builds a view from a notification.
func NewNotificationView(n Notification) NotificationView {
	return NotificationView{
		Subject:   n.Subject,
		CreatedOn: n.CreatedAt,
		Status:    n.Status,
		Type:      n.ChannelType,
	}
}

// Service is the transport-independent entry point of the package.
type Service struct {
	preferences *PreferenceManager
	dispatcher  *Dispatcher
	history     *History
}

// NewService wires the preference manager, dispatcher and history over the given stores and channel.
func NewService(prefs PreferenceStore, notifs NotificationStore, channel Channel, opts ...Option) *Service {
	preferences := NewPreferenceManager(prefs, opts...)
	return &Service{
		preferences: preferences,
		dispatcher:  NewDispatcher(preferences, notifs, channel, opts...),
		history:     NewHistory(notifs, opts...),
	}
}

func (s *Service) UpsertPreference(ctx context.Context, params UpsertParams) (PreferenceView, error) {
	pref, err := s.preferences.Upsert(ctx, params)
	if err != nil {
		return PreferenceView{}, err
	}
	return NewPreferenceView(*pref), nil
}

func (s *Service) GetPreference(ctx context.Context, userID uuid.UUID) (PreferenceView, error) {
	pref, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		return PreferenceView{}, err
	}
	return NewPreferenceView(*pref), nil
}

func (s *Service) SetPreferenceEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (PreferenceView, error) {
	pref, err := s.preferences.SetEnabled(ctx, userID, enabled)
	if err != nil {
		return PreferenceView{}, err
	}
	return NewPreferenceView(*pref), nil
}

// Send dispatches a message. It fails only for preference and storage errors;
// a delivery failure is reported through the returned view's status.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, subject, body string) (NotificationView, error) {
	notif, err := s.dispatcher.Dispatch(ctx, userID, subject, body)
	if err != nil {
		return NotificationView{}, err
	}
	return NewNotificationView(*notif), nil
}

func (s *Service) ListHistory(ctx context.Context, userID uuid.UUID) ([]NotificationView, error) {
	notifs, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, len(notifs))
	for i, n := range notifs {
		views[i] = NewNotificationView(n)
	}
	return views, nil
}

func (s *Service) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	return s.history.Clear(ctx, userID)
}

func (s *Service) RetryFailed(ctx context.Context, userID uuid.UUID) error {
	return s.dispatcher.Retry(ctx, userID)
}
