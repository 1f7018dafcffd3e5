//go:build !linux

package evdev

import "errors"

// ErrUnsupported is returned on systems without evdev.
var ErrUnsupported = errors.New("evdev is only available on linux")

// FindKeyboards is not supported on this system.
func FindKeyboards() ([]string, error) {
	return nil, ErrUnsupported
}

// Diagnose is not supported on this system.
func Diagnose() (string, error) {
	return "", ErrUnsupported
}
