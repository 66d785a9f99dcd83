package courier_errors

import "errors"

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrSelfMessage   = errors.New("cannot send a message to yourself")
	ErrTooLarge      = errors.New("file too large")
	ErrAlreadyExists = errors.New("already exists")
)
