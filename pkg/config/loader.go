package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load parses environment variables into v according to its `env` and
// `envDefault` tags. The first call also loads a .env file from the working
// directory when one exists; variables already set in the process win.
//
// Example:
//
//	type Config struct {
//		DeliveryTimeout time.Duration `env:"DISPATCH_DELIVERY_TIMEOUT" envDefault:"10s"`
//		Postgres        pg.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// A missing .env is fine.
		_ = godotenv.Load()
	})

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return errors.Join(ErrEnvFile, err)
		}
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
