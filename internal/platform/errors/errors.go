package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNoSession    = errors.New("no active session")
	ErrForbidden    = errors.New("forbidden")

	// Login outcomes.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnreachable        = errors.New("server unreachable")
	ErrServer             = errors.New("server error")

	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
)
