package domain

import "errors"

// Domain errors (no external dependencies). Every failure in the core is one
// of these, wrapped with context at the point of detection; the HTTP layer
// maps them to status codes.
var (
	ErrInvalidID          = errors.New("id is null, zero or does not exist")
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidState       = errors.New("invalid state")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
)
