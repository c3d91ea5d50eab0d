package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionExpired  = errors.New("session expired")
	ErrUnsupportedPlan = errors.New("unsupported plan")
	ErrProviderFailure = errors.New("provider failure")
	ErrConflict        = errors.New("conflict")
)
