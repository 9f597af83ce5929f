package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/notifykit/internal/notification"
	"github.com/dmitrymomot/notifykit/pkg/binder"
	"github.com/dmitrymomot/notifykit/pkg/handler"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/validator"
)

func (a *API) upsertPreference() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, req upsertPreferenceRequest) handler.Response {
		params, err := req.params()
		if err != nil {
			return a.fail(r, err)
		}
		view, err := a.svc.UpsertPreference(r.Context(), params)
		if err != nil {
			return a.fail(r, err)
		}
		return handler.JSON(view, handler.WithStatus(http.StatusCreated))
	}, handler.WithBinders(binder.JSON), handler.WithErrorHandler(a.bindError))
}

func (a *API) getPreference() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, q userQuery) handler.Response {
		userID, err := q.userID()
		if err != nil {
			return a.fail(r, err)
		}
		view, err := a.svc.GetPreference(r.Context(), userID)
		if err != nil {
			return a.fail(r, err)
		}
		return handler.JSON(view)
	}, handler.WithBinders(binder.Query), handler.WithErrorHandler(a.bindError))
}

func (a *API) setPreferenceEnabled() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, q setEnabledQuery) handler.Response {
		userID, enabled, err := q.validate()
		if err != nil {
			return a.fail(r, err)
		}
		view, err := a.svc.SetPreferenceEnabled(r.Context(), userID, enabled)
		if err != nil {
			return a.fail(r, err)
		}
		return handler.JSON(view)
	}, handler.WithBinders(binder.Query), handler.WithErrorHandler(a.bindError))
}

// send answers 201 for both delivered and failed notifications; the outcome is in the status field.
func (a *API) send() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, req sendRequest) handler.Response {
		userID, err := req.validate()
		if err != nil {
			return a.fail(r, err)
		}
		view, err := a.svc.Send(r.Context(), userID, req.Subject, req.Body)
		if err != nil {
			return a.fail(r, err)
		}
		return handler.JSON(view, handler.WithStatus(http.StatusCreated))
	}, handler.WithBinders(binder.JSON), handler.WithErrorHandler(a.bindError))
}

func (a *API) listHistory() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, q userQuery) handler.Response {
		userID, err := q.userID()
		if err != nil {
			return a.fail(r, err)
		}
		views, err := a.svc.ListHistory(r.Context(), userID)
		if err != nil {
			return a.fail(r, err)
		}
		return handler.JSON(views)
	}, handler.WithBinders(binder.Query), handler.WithErrorHandler(a.bindError))
}

func (a *API) clearHistory() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, q userQuery) handler.Response {
		userID, err := q.userID()
		if err != nil {
			return a.fail(r, err)
		}
		if err := a.svc.ClearHistory(r.Context(), userID); err != nil {
			return a.fail(r, err)
		}
		return handler.Empty(http.StatusOK)
	}, handler.WithBinders(binder.Query), handler.WithErrorHandler(a.bindError))
}

func (a *API) retryFailed() http.HandlerFunc {
	return handler.Wrap(func(r *http.Request, q userQuery) handler.Response {
		userID, err := q.userID()
		if err != nil {
			return a.fail(r, err)
		}
		if err := a.svc.RetryFailed(r.Context(), userID); err != nil {
			return a.fail(r, err)
		}
		return handler.Empty(http.StatusOK)
	}, handler.WithBinders(binder.Query), handler.WithErrorHandler(a.bindError))
}

// fail maps domain errors to HTTP errors. Unclassified errors are logged and
// rendered as an opaque 500.
func (a *API) fail(r *http.Request, err error) handler.Response {
	switch {
	case validator.IsValidationError(err):
		return handler.JSONError(err)
	case errors.Is(err, notification.ErrPreferenceNotFound):
		return handler.JSONError(handler.ErrNotFound.WithMessage("notification preference not found"))
	case errors.Is(err, notification.ErrPreferenceDisabled):
		return handler.JSONError(handler.ErrConflict.WithMessage("notifications are disabled for this user"))
	case errors.Is(err, notification.ErrInvalidChannelType):
		return handler.JSONError(handler.ErrUnprocessableEntity.WithMessage(err.Error()))
	}

	a.logger.ErrorContext(r.Context(), "request failed", logger.Error(err))
	return handler.JSONError(err)
}

// bindError maps decoding failures to 4xx responses.
func (a *API) bindError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr handler.HTTPError
	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		httpErr = handler.ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrBodyTooLarge):
		httpErr = handler.NewHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	default:
		httpErr = handler.ErrBadRequest
	}
	a.logger.DebugContext(r.Context(), "request binding failed", logger.Error(err))
	_ = handler.JSONError(httpErr.WithMessage(err.Error())).Render(w, r)
}
