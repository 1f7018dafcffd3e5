package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/dassana-io/web-utils/internal/event"
	"github.com/rs/zerolog"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// Tracker holds the current theme and follows themeUpdated emits until
// closed.
type Tracker struct {
	mu        sync.Mutex
	current   Type
	sub       *event.Subscription
	emitter   *event.Emitter
	listeners map[uint64]func(Type)
	nextID    uint64
	changes   uint64
	closed    bool
	logger    zerolog.Logger
}

// NewTracker reads the initial theme from store and subscribes to e.
func NewTracker(e *event.Emitter, store Reader, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		current:   Stored(store),
		emitter:   e,
		listeners: make(map[uint64]func(Type)),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	sub, err := e.OnFunc(event.TopicThemeUpdated, t.handle)
	if err != nil {
		return nil, fmt.Errorf("subscribing to theme updates: %w", err)
	}
	t.sub = sub
	return t, nil
}

func (t *Tracker) handle(_ context.Context, payload any) error {
	var next Type
	switch v := payload.(type) {
	case Type:
		next = v
	case string:
		next = Type(v)
	default:
		return fmt.Errorf("%T payload: %w", payload, ErrUnknownTheme)
	}
	if !next.IsValid() {
		return fmt.Errorf("%q: %w", next, ErrUnknownTheme)
	}

	t.mu.Lock()
	if t.closed || next == t.current {
		t.mu.Unlock()
		return nil
	}
	t.current = next
	t.changes++
	fns := make([]func(Type), 0, len(t.listeners))
	for id := uint64(0); id < t.nextID; id++ {
		if fn, ok := t.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	t.mu.Unlock()

	t.logger.Debug().Str("theme", string(next)).Msg("theme changed")
	for _, fn := range fns {
		fn(next)
	}
	return nil
}

// Current returns the current theme.
func (t *Tracker) Current() Type {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Changes returns how many times the theme has changed.
func (t *Tracker) Changes() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changes
}

// OnChange registers fn to run after each change, in registration order.
// The returned func removes it.
func (t *Tracker) OnChange(fn func(Type)) (release func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// Close unsubscribes from the emitter. Close is idempotent.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	sub := t.sub
	t.mu.Unlock()

	t.emitter.Off(event.TopicThemeUpdated, sub)
}
