package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// restaurant or chat session does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. blank chat message, duplicate catalog id, negative budget).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
