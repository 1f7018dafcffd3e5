package keymap

import (
	"errors"
	"fmt"

	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/shortcut"
)

// ErrUnknownAction is returned by resolvers for actions they do not know.
var ErrUnknownAction = errors.New("unknown action")

// Resolver returns the callback that runs a binding.
type Resolver func(b Binding) (func(), error)

// Bound is a keymap attached to a window.
type Bound struct {
	shortcuts []*shortcut.Shortcut
}

// Bind registers a shortcut for every binding in km. A binding's When
// expression is evaluated against ctx each time its keys match. If any
// binding fails, the shortcuts already registered are released.
func Bind(w *input.Window, km *Keymap, ctx *Context, resolve Resolver) (*Bound, error) {
	if km == nil {
		return nil, errors.New("keymap is nil")
	}
	if resolve == nil {
		return nil, errors.New("resolver is nil")
	}

	bound := &Bound{}
	for i, b := range km.Bindings {
		s, err := bindOne(w, b, ctx, resolve)
		if err != nil {
			bound.Release()
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		bound.shortcuts = append(bound.shortcuts, s)
	}
	return bound, nil
}

func bindOne(w *input.Window, b Binding, ctx *Context, resolve Resolver) (*shortcut.Shortcut, error) {
	sb, err := b.Shortcut()
	if err != nil {
		return nil, err
	}
	cb, err := resolve(b)
	if err != nil {
		return nil, err
	}

	cfg := shortcut.Config{
		Binding:        sb,
		Callback:       cb,
		PreventDefault: b.PreventDefault,
	}
	if b.When != "" {
		when := b.When
		cfg.Condition = func() bool { return ctx.Evaluate(when) }
	}
	return shortcut.Register(w, cfg)
}

// Len returns the number of attached shortcuts.
func (b *Bound) Len() int {
	return len(b.shortcuts)
}

// Release detaches every shortcut.
func (b *Bound) Release() {
	for _, s := range b.shortcuts {
		s.Release()
	}
	b.shortcuts = nil
}
