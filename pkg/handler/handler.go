// Package handler adapts typed request handlers to net/http and renders JSON responses.
//
//	type sendRequest struct {
//	    UserID string `json:"userId"`
//	}
//
//	r.Post("/", handler.Wrap(func(r *http.Request, req sendRequest) handler.Response {
//	    return handler.JSON(result, handler.WithStatus(http.StatusCreated))
//	}, handler.WithBinders(binder.JSON)))
package handler

import (
	"net/http"
)

// Response renders itself to w.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request already decoded into R.
type HandlerFunc[R any] func(r *http.Request, req R) Response

// Bind decodes part of a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler renders errors raised by binding or rendering.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type wrapConfig struct {
	binders      []Bind
	errorHandler ErrorHandler
}

type WrapOption func(*wrapConfig)

// WithBinders runs binders in order before the handler.
func WithBinders(binders ...Bind) WrapOption {
	return func(c *wrapConfig) {
		c.binders = append(c.binders, binders...)
	}
}

func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// DefaultErrorHandler renders err through JSONError.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	_ = JSONError(err).Render(w, r)
}

// Wrap converts h into an http.HandlerFunc.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{errorHandler: DefaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
		}

		resp := h(r, req)
		if resp == nil {
			cfg.errorHandler(w, r, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(w, r, err)
		}
	}
}
