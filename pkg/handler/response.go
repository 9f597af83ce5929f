package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/notifykit/pkg/validator"
)

// JSONBody is the envelope of every JSON response.
type JSONBody struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONBody
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON renders v as {"data": v} with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONBody{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": {...}}. HTTPError keeps its code,
// validation errors become 422 with per-field details, and anything else is a
// 500 whose message is not exposed.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}

	var (
		httpErr HTTPError
		valErrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &valErrs):
		r.status = http.StatusUnprocessableEntity
		r.body.Error = &ErrorDetail{
			Code:    "validation_error",
			Message: validator.ErrValidationFailed.Error(),
			Details: valErrs.Map(),
		}
	case errors.As(err, &httpErr):
		r.status = httpErr.Code
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		r.body.Error = &ErrorDetail{Code: httpErr.Key, Message: msg}
	default:
		r.body.Error = &ErrorDetail{
			Code:    ErrInternalServerError.Key,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty writes status with no body.
func Empty(status int) Response {
	return emptyResponse{status: status}
}
