// Package rediscache puts a Redis read-through cache in front of a notification.PreferenceStore.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Config controls cache lifetime and key layout.
type Config struct {
	TTL       time.Duration `env:"PREFERENCE_CACHE_TTL" envDefault:"5m"`
	KeyPrefix string        `env:"PREFERENCE_CACHE_PREFIX" envDefault:"notifykit:preference:"`
}

// PreferenceStore caches preferences by user id. The wrapped store stays the
// source of truth: Redis failures are logged and fall through to it, and
// not-found results are never cached.
type PreferenceStore struct {
	next   notification.PreferenceStore
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

type Option func(*PreferenceStore)

func WithLogger(l *slog.Logger) Option {
	return func(s *PreferenceStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig applies the non-zero values of cfg.
func WithConfig(cfg Config) Option {
	return func(s *PreferenceStore) {
		if cfg.TTL > 0 {
			s.ttl = cfg.TTL
		}
		if cfg.KeyPrefix != "" {
			s.prefix = cfg.KeyPrefix
		}
	}
}

func New(next notification.PreferenceStore, client redis.UniversalClient, opts ...Option) *PreferenceStore {
	s := &PreferenceStore{
		next:   next,
		client: client,
		ttl:    5 * time.Minute,
		prefix: "notifykit:preference:",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("preference_cache"))
	return s
}

func (s *PreferenceStore) FindByUser(ctx context.Context, userID uuid.UUID) (*notification.Preference, error) {
	if pref, ok := s.get(ctx, userID); ok {
		return pref, nil
	}

	pref, err := s.next.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.set(ctx, pref)
	return pref, nil
}

// Save writes through to the wrapped store and refreshes the cached entry.
func (s *PreferenceStore) Save(ctx context.Context, pref notification.Preference) (*notification.Preference, error) {
	saved, err := s.next.Save(ctx, pref)
	if err != nil {
		// The write may have partially landed; drop the entry rather than serve stale data.
		s.evict(ctx, pref.UserID)
		return nil, err
	}
	s.set(ctx, saved)
	return saved, nil
}

func (s *PreferenceStore) key(userID uuid.UUID) string {
	return s.prefix + userID.String()
}

func (s *PreferenceStore) get(ctx context.Context, userID uuid.UUID) (*notification.Preference, bool) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "preference cache read failed",
				logger.UserID(userID.String()),
				logger.Error(err),
			)
		}
		return nil, false
	}

	var pref notification.Preference
	if err := json.Unmarshal(raw, &pref); err != nil {
		s.logger.WarnContext(ctx, "corrupt preference cache entry",
			logger.UserID(userID.String()),
			logger.Error(err),
		)
		s.evict(ctx, userID)
		return nil, false
	}
	return &pref, true
}

func (s *PreferenceStore) set(ctx context.Context, pref *notification.Preference) {
	raw, err := json.Marshal(pref)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, s.key(pref.UserID), raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "preference cache write failed",
			logger.UserID(pref.UserID.String()),
			logger.Error(err),
		)
		s.evict(ctx, pref.UserID)
	}
}

func (s *PreferenceStore) evict(ctx context.Context, userID uuid.UUID) {
	if err := s.client.Del(context.WithoutCancel(ctx), s.key(userID)).Err(); err != nil {
		s.logger.WarnContext(ctx, "preference cache evict failed",
			logger.UserID(userID.String()),
			logger.Error(err),
		)
	}
}
