package storage

import "errors"

var (
	// ErrCorrupt is returned when a store file does not hold a JSON object.
	ErrCorrupt = errors.New("storage: corrupt store file")

	// ErrEmptyKey is returned when a key or widget id is empty.
	ErrEmptyKey = errors.New("storage: empty key")

	// ErrInvalidID is returned when a widget id cannot be used as a file name.
	ErrInvalidID = errors.New("storage: invalid widget id")

	// ErrNilFunc is returned by Watch when no change func is given.
	ErrNilFunc = errors.New("storage: nil change func")
)
