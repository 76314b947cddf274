package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyRated      = errors.New("swap already rated")
	ErrRateLimited       = errors.New("rate limited")
	ErrUnavailable       = errors.New("backend unavailable")
)
