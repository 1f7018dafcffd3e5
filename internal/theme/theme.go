// Package theme tracks the application's color theme.
//
// The current theme lives in client storage under StorageKey and is
// broadcast on event.TopicThemeUpdated. A Tracker reads the stored value
// once and then follows the emitter, so independently created trackers
// agree without polling storage.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dassana-io/web-utils/internal/event"
)

// Type is a theme name.
type Type string

// Themes.
const (
	Dark  Type = "dark"
	Light Type = "light"
)

// Default is used when nothing valid is stored.
const Default = Dark

// StorageKey is the client storage key holding the theme name.
const StorageKey = "theme"

// ErrUnknownTheme is returned for names other than dark or light.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Parse converts a name into a Type. Case and surrounding space are ignored.
func Parse(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Dark, Light:
		return t, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownTheme)
}

// IsValid reports whether t is a known theme.
func (t Type) IsValid() bool {
	return t == Dark || t == Light
}

// String returns the theme name.
func (t Type) String() string {
	return string(t)
}

// Toggle returns the other theme.
func (t Type) Toggle() Type {
	if t == Light {
		return Dark
	}
	return Light
}

// Reader reads the stored theme.
type Reader interface {
	Get(key string) (string, bool)
}

// Writer persists the theme.
type Writer interface {
	Set(key, value string) error
}

// Stored returns the theme held in r, or Default when it is absent or
// not a known theme.
func Stored(r Reader) Type {
	if r == nil {
		return Default
	}
	v, ok := r.Get(StorageKey)
	if !ok {
		return Default
	}
	t, err := Parse(v)
	if err != nil {
		return Default
	}
	return t
}

// Set persists t and announces it on the emitter.
func Set(ctx context.Context, e *event.Emitter, w Writer, t Type) error {
	if !t.IsValid() {
		return fmt.Errorf("%q: %w", t, ErrUnknownTheme)
	}
	if w != nil {
		if err := w.Set(StorageKey, string(t)); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
	}
	return e.Emit(ctx, event.TopicThemeUpdated, t)
}

// ExternalChange returns a storage change func that announces theme
// changes written by another process. A removed key announces Default.
func ExternalChange(ctx context.Context, e *event.Emitter) func(key, value string, ok bool) {
	return func(key, value string, ok bool) {
		if key != StorageKey {
			return
		}
		t := Default
		if ok {
			parsed, err := Parse(value)
			if err != nil {
				return
			}
			t = parsed
		}
		_ = e.Emit(ctx, event.TopicThemeUpdated, t)
	}
}
