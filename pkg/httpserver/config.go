package httpserver

import "time"

type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`           // Addr is the listen address.
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`     // ReadTimeout bounds reading the whole request.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`    // WriteTimeout bounds writing the response; keep it above DISPATCH_DELIVERY_TIMEOUT.
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`    // IdleTimeout is the keep-alive idle limit.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"` // ShutdownTimeout bounds graceful shutdown.
}

func defaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// merge overlays the non-zero fields of c onto base.
func (c Config) merge(base Config) Config {
	if c.Addr != "" {
		base.Addr = c.Addr
	}
	if c.ReadTimeout > 0 {
		base.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		base.WriteTimeout = c.WriteTimeout
	}
	if c.IdleTimeout > 0 {
		base.IdleTimeout = c.IdleTimeout
	}
	if c.ShutdownTimeout > 0 {
		base.ShutdownTimeout = c.ShutdownTimeout
	}
	return base
}
