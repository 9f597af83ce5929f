package notification

import (
	"log/slog"
	"time"
)

// Config holds dispatch settings loaded from the environment.
type Config struct {
	DeliveryTimeout time.Duration `env:"DISPATCH_DELIVERY_TIMEOUT" envDefault:"10s"` // DeliveryTimeout bounds a single channel call.
}

const defaultDeliveryTimeout = 10 * time.Second

type options struct {
	logger          *slog.Logger
	now             func() time.Time
	deliveryTimeout time.Duration
}

// Option configures the components of this package.
type Option func(*options)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDeliveryTimeout bounds each channel call. Non-positive values are ignored.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.deliveryTimeout = d
		}
	}
}

// WithConfig applies the non-zero values of cfg.
func WithConfig(cfg Config) Option {
	return WithDeliveryTimeout(cfg.DeliveryTimeout)
}

func newOptions(opts []Option) options {
	o := options{
		logger:          slog.Default(),
		now:             time.Now,
		deliveryTimeout: defaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
