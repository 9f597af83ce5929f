// Package api exposes the notification service over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/requestid"
)

// BasePath prefixes every notification route.
const BasePath = "/api/v1/notifications"

// Service is the subset of notification.Service the API calls.
type Service interface {
	UpsertPreference(ctx context.Context, params notification.UpsertParams) (notification.PreferenceView, error)
	GetPreference(ctx context.Context, userID uuid.UUID) (notification.PreferenceView, error)
	SetPreferenceEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (notification.PreferenceView, error)
	Send(ctx context.Context, userID uuid.UUID, subject, body string) (notification.NotificationView, error)
	ListHistory(ctx context.Context, userID uuid.UUID) ([]notification.NotificationView, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
	RetryFailed(ctx context.Context, userID uuid.UUID) error
}

type API struct {
	svc    Service
	logger *slog.Logger
	checks []httpserver.Check
}

type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithReadinessChecks adds probes served on /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(a *API) {
		a.checks = append(a.checks, checks...)
	}
}

func New(svc Service, opts ...Option) *API {
	a := &API{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("api"))
	return a
}

// Router builds the full HTTP handler: middleware, health probes and notification routes.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Get("/health/live", httpserver.HealthCheckHandler(a.logger))
	r.Get("/health/ready", httpserver.HealthCheckHandler(a.logger, a.checks...))

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/preferences", a.upsertPreference())
		r.Get("/preferences", a.getPreference())
		r.Put("/preferences", a.setPreferenceEnabled())

		r.Post("/", a.send())
		r.Get("/", a.listHistory())
		r.Delete("/", a.clearHistory())
		r.Put("/", a.retryFailed())
	})
	return r
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		a.logger.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
