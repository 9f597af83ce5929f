package main

import (
	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/internal/storage/rediscache"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/pg"
	"github.com/dmitrymomot/notifykit/pkg/redis"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Name          string `env:"APP_NAME" envDefault:"notifykit"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	HTTP       httpserver.Config
	Postgres   pg.Config
	Redis      redis.Config
	Cache      rediscache.Config
	Email      email.Config
	Dispatcher notification.Config
}
