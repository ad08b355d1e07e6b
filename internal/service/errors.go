package service

import "errors"

var (
	// ErrUnauthorized covers bad credentials and any failed token resolution.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when registering an email that is already taken.
	ErrConflict = errors.New("email already registered")
	// ErrNotFound is returned for tasks that do not exist or belong to another user.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
