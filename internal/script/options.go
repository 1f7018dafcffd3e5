package script

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/theme"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = time.Second

// ThemeSource reports the active theme.
type ThemeSource interface {
	Current() theme.Type
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by log() and for failed actions.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTheme sets the source returned by theme().
func WithTheme(src ThemeSource) Option {
	return func(e *Engine) {
		e.themes = src
	}
}

// WithTimeout bounds each run. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}
