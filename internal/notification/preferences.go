package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// UpsertParams describes the desired state of a user's preference.
type UpsertParams struct {
	UserID         uuid.UUID
	Enabled        bool
	ChannelType    ChannelType
	ContactAddress string
}

// PreferenceManager is the only writer of preference records.
type PreferenceManager struct {
	store  PreferenceStore
	logger *slog.Logger
	now    func() time.Time
}

// NewPreferenceManager creates a preference manager backed by store.
func NewPreferenceManager(store PreferenceStore, opts ...Option) *PreferenceManager {
	o := newOptions(opts)
	return &PreferenceManager{
		store:  store,
		logger: o.logger,
		now:    o.now,
	}
}

// Upsert creates the user's preference or overwrites the existing one in place.
// Calling it repeatedly with the same params converges to the same stored state.
func (m *PreferenceManager) Upsert(ctx context.Context, params UpsertParams) (*Preference, error) {
	if !params.ChannelType.Valid() {
		return nil, ErrInvalidChannelType
	}

	existing, err := m.store.FindByUser(ctx, params.UserID)
	switch {
	case err == nil:
		existing.Enabled = params.Enabled
		existing.ChannelType = params.ChannelType
		existing.ContactAddress = params.ContactAddress
		existing.UpdatedAt = m.now()
		return m.save(ctx, *existing)
	case errors.Is(err, ErrPreferenceNotFound):
	default:
		return nil, errors.Join(ErrStorage, err)
	}

	now := m.now()
	pref, err := m.save(ctx, Preference{
		ID:             uuid.New(),
		UserID:         params.UserID,
		Enabled:        params.Enabled,
		ChannelType:    params.ChannelType,
		ContactAddress: params.ContactAddress,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "notification preference created",
		logger.UserID(pref.UserID),
		slog.Bool("enabled", pref.Enabled),
		logger.Component("preferences"),
	)
	return pref, nil
}

// GetByUser returns the user's preference or ErrPreferenceNotFound.
func (m *PreferenceManager) GetByUser(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	pref, err := m.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPreferenceNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, errors.Join(ErrStorage, err)
	}
	return pref, nil
}

// SetEnabled toggles delivery for an existing preference.
// The record is persisted even when the value does not change.
func (m *PreferenceManager) SetEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (*Preference, error) {
	pref, err := m.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pref.Enabled = enabled
	pref.UpdatedAt = m.now()
	return m.save(ctx, *pref)
}

func (m *PreferenceManager) save(ctx context.Context, pref Preference) (*Preference, error) {
	saved, err := m.store.Save(ctx, pref)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return saved, nil
}
