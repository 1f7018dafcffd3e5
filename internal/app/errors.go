package app

import (
	"errors"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrClosed indicates the application was closed.
	ErrClosed = errors.New("application closed")

	// ErrInvalidArgs indicates a binding with unusable arguments.
	ErrInvalidArgs = errors.New("invalid action arguments")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
