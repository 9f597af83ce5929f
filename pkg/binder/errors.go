package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON body")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrBodyTooLarge         = errors.New("request body too large")
)
