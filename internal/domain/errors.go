package domain

import "errors"

// ErrNotFound is returned when a tag does not exist or is not active.
// The two cases are deliberately indistinguishable to callers.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing tag id, non-positive amount).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when the administrative shared secret does not
// match. It is always returned before any mutation is attempted.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
