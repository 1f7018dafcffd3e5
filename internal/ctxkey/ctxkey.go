// Package ctxkey provides typed context keys.
//
// A Key carries a value of one type through a context.Context without a
// package-level singleton. Components that need a shared instance (the
// emitter, the theme tracker) receive it explicitly or pull it from the
// context a caller prepared:
//
//	var emitterKey = ctxkey.New[*event.Emitter]("emitter")
//	ctx = emitterKey.With(ctx, em)
//	em, err := emitterKey.From(ctx)
package ctxkey

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissing is returned when a context holds no value for a key.
var ErrMissing = errors.New("context value missing")

// Key identifies a typed context value.
type Key[T any] struct {
	name *string
}

// New creates a key. Two keys created with the same name are distinct.
func New[T any](name string) Key[T] {
	return Key[T]{name: &name}
}

// Name returns the key name used in error messages.
func (k Key[T]) Name() string {
	if k.name == nil {
		return ""
	}
	return *k.name
}

// With returns a child context carrying v.
func (k Key[T]) With(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k.name, v)
}

// From extracts the value stored under k.
func (k Key[T]) From(ctx context.Context) (T, error) {
	if ctx != nil {
		if v, ok := ctx.Value(k.name).(T); ok {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s must be provided by a parent context", ErrMissing, k.Name())
}

// MustFrom is like From but panics when the value is missing.
func (k Key[T]) MustFrom(ctx context.Context) T {
	v, err := k.From(ctx)
	if err != nil {
		panic(err)
	}
	return v
}
