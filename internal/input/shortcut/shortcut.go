package shortcut

import (
	"fmt"
	"sync"

	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
)

// Config describes a shortcut.
type Config struct {
	// Binding selects the key or chord.
	Binding Binding

	// Callback runs when the shortcut fires.
	Callback func()

	// Condition, when set, must return true for the callback to run.
	// It is consulted only once the keys match.
	Condition func() bool

	// PreventDefault marks the triggering event as handled when the
	// callback runs.
	PreventDefault bool
}

// Shortcut is a registered shortcut. Its listeners stay attached to the
// window until Release.
type Shortcut struct {
	binding   Binding
	callback  func()
	condition func() bool
	prevent   bool

	mu        sync.Mutex
	firstHeld bool
	releases  []input.Release
	released  bool
}

// Register validates cfg and attaches the shortcut to w.
func Register(w *input.Window, cfg Config) (*Shortcut, error) {
	if w == nil {
		return nil, ErrNilWindow
	}
	if cfg.Binding == nil {
		return nil, ErrNilBinding
	}
	if cfg.Callback == nil {
		return nil, ErrNilCallback
	}

	s := &Shortcut{
		callback:  cfg.Callback,
		condition: cfg.Condition,
		prevent:   cfg.PreventDefault,
	}

	switch b := cfg.Binding.(type) {
	case Single:
		nb, err := b.normalize()
		if err != nil {
			return nil, err
		}
		s.binding = nb
		s.releases = append(s.releases, w.OnKey(nb.On, s.singleListener(nb)))
	case Chord:
		nb, err := b.normalize()
		if err != nil {
			return nil, err
		}
		s.binding = nb
		s.releases = append(s.releases,
			w.OnKeyDown(s.chordKeyDown(nb)),
			w.OnKeyUp(s.chordKeyUp(nb)),
			w.OnBlur(s.reset),
		)
	default:
		return nil, fmt.Errorf("%w: unsupported binding %T", ErrInvalidBinding, cfg.Binding)
	}

	return s, nil
}

// MustRegister is like Register but panics on a configuration error.
func MustRegister(w *input.Window, cfg Config) *Shortcut {
	s, err := Register(w, cfg)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Shortcut) singleListener(b Single) input.KeyListener {
	return func(e *key.Event) {
		if e.Repeat || e.Key != b.Key {
			return
		}
		s.fire(e)
	}
}

func (s *Shortcut) chordKeyDown(c Chord) input.KeyListener {
	first, second := c.Keys[0], c.Keys[1]
	return func(e *key.Event) {
		if e.Repeat {
			return
		}

		s.mu.Lock()
		switch {
		case e.Key == first:
			s.firstHeld = true
			s.mu.Unlock()
			return
		case e.Key != second || !s.firstHeld:
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		if s.fire(e) {
			s.reset()
		}
	}
}

func (s *Shortcut) chordKeyUp(c Chord) input.KeyListener {
	first := c.Keys[0]
	return func(e *key.Event) {
		if e.Key == first {
			s.reset()
		}
	}
}

// fire runs the callback if the condition allows it. No lock is held
// while user code runs.
func (s *Shortcut) fire(e *key.Event) bool {
	if s.condition != nil && !s.condition() {
		return false
	}
	s.callback()
	if s.prevent {
		e.PreventDefault()
	}
	return true
}

func (s *Shortcut) reset() {
	s.mu.Lock()
	s.firstHeld = false
	s.mu.Unlock()
}

// Binding returns the normalized binding.
func (s *Shortcut) Binding() Binding {
	return s.binding
}

// FirstKeyHeld reports whether a chord's first key is currently held.
// It is always false for single-key shortcuts.
func (s *Shortcut) FirstKeyHeld() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstHeld
}

// Release detaches every listener. It is safe to call more than once.
func (s *Shortcut) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	s.firstHeld = false
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	for _, r := range releases {
		r()
	}
}

// Dismiss calls fn with the key whenever one of keys is released.
// With no keys it listens for Escape.
func Dismiss(w *input.Window, keys []string, fn func(k string)) (input.Release, error) {
	if w == nil {
		return nil, ErrNilWindow
	}
	if fn == nil {
		return nil, ErrNilCallback
	}
	if len(keys) == 0 {
		keys = []string{key.Escape}
	}

	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = key.Normalize(k)
		if k == "" {
			return nil, ErrEmptyKey
		}
		set[k] = struct{}{}
	}

	return w.OnKeyUp(func(e *key.Event) {
		if _, ok := set[e.Key]; ok {
			fn(e.Key)
		}
	}), nil
}
