package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateEmail marks a unique-constraint violation on the user email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUpstream marks database or blob-store failures that should surface
	// to clients only as a generic 500.
	ErrUpstream = errors.New("upstream failure")
)
