package script

import "errors"

var (
	// ErrClosed is returned when running a script on a closed engine.
	ErrClosed = errors.New("script: engine is closed")

	// ErrNilEmitter is returned by New without an emitter.
	ErrNilEmitter = errors.New("script: nil emitter")

	// ErrEmptyScript is returned for a script binding with no source.
	ErrEmptyScript = errors.New("script: empty script")
)
