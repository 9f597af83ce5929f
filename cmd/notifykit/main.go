package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/notifykit/internal/api"
	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/internal/storage/postgres"
	"github.com/dmitrymomot/notifykit/internal/storage/rediscache"
	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/pg"
	"github.com/dmitrymomot/notifykit/pkg/redis"
	"github.com/dmitrymomot/notifykit/pkg/requestid"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("notifykit stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var (
		prefs  notification.PreferenceStore
		notifs notification.NotificationStore
		checks []httpserver.Check
	)

	switch cfg.StorageDriver {
	case storagePostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, cfg.Postgres, postgres.Migrations, postgres.MigrationsDir, log); err != nil {
			return err
		}
		prefs = postgres.NewPreferenceStore(pool)
		notifs = postgres.NewNotificationStore(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	case storageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		prefs = notification.NewMemoryPreferenceStore()
		notifs = notification.NewMemoryNotificationStore()
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		}()

		prefs = rediscache.New(prefs, client, rediscache.WithConfig(cfg.Cache), rediscache.WithLogger(log))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		return errors.Join(errors.New("email sender"), err)
	}
	channel := email.NewChannel(sender, email.WithTag(cfg.Email.Tag))

	svc := notification.NewService(prefs, notifs, channel,
		notification.WithConfig(cfg.Dispatcher),
		notification.WithLogger(log),
	)

	router := api.New(svc,
		api.WithLogger(log),
		api.WithReadinessChecks(checks...),
	).Router()

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}
