package domain

import "errors"

// Failure kinds surfaced by services. Handlers map these to HTTP statuses
// with errors.Is; anything unrecognized is treated as an upstream failure.
var (
	ErrUnauthenticated = errors.New("invalid or expired credential")
	ErrForbidden       = errors.New("insufficient privilege")
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrEmailTaken      = errors.New("email already registered")
)
