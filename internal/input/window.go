package input

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/event/dispatch"
	"github.com/dassana-io/web-utils/internal/input/key"
)

// KeyListener receives keydown or keyup events.
type KeyListener func(e *key.Event)

// ResizeListener receives the new window size.
type ResizeListener func(size Size)

// Size is the window size in cells or pixels, depending on the source.
type Size struct {
	Width  int
	Height int
}

// Release removes a listener. Calling it more than once is a no-op.
type Release func()

type listener struct {
	id      uint64
	removed atomic.Bool
	onKey   KeyListener
	onBlur  func()
	onSize  ResizeListener
}

type listenerKind uint8

const (
	kindKeyDown listenerKind = iota
	kindKeyUp
	kindBlur
	kindResize
	numKinds
)

// Window is the event target shortcuts attach to. Sources feed it key,
// blur and resize events; listeners run synchronously on the dispatching
// goroutine in registration order.
type Window struct {
	mu        sync.RWMutex
	listeners [numKinds][]*listener
	nextID    atomic.Uint64
	size      Size

	metrics *Metrics
	logger  zerolog.Logger
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger used for listener panics.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Window) {
		w.logger = l
	}
}

// WithSize sets the initial window size.
func WithSize(s Size) Option {
	return func(w *Window) {
		w.size = s
	}
}

// NewWindow creates an empty window.
func NewWindow(opts ...Option) *Window {
	w := &Window{
		metrics: NewMetrics(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnKey registers fn for events of type t.
func (w *Window) OnKey(t key.Type, fn KeyListener) Release {
	if t == key.KeyUp {
		return w.add(kindKeyUp, &listener{onKey: fn})
	}
	return w.add(kindKeyDown, &listener{onKey: fn})
}

// OnKeyDown registers fn for keydown events.
func (w *Window) OnKeyDown(fn KeyListener) Release {
	return w.add(kindKeyDown, &listener{onKey: fn})
}

// OnKeyUp registers fn for keyup events.
func (w *Window) OnKeyUp(fn KeyListener) Release {
	return w.add(kindKeyUp, &listener{onKey: fn})
}

// OnBlur registers fn for focus loss.
func (w *Window) OnBlur(fn func()) Release {
	return w.add(kindBlur, &listener{onBlur: fn})
}

// OnResize registers fn for size changes.
func (w *Window) OnResize(fn ResizeListener) Release {
	return w.add(kindResize, &listener{onSize: fn})
}

func (w *Window) add(kind listenerKind, l *listener) Release {
	l.id = w.nextID.Add(1)

	w.mu.Lock()
	w.listeners[kind] = append(w.listeners[kind], l)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { w.remove(kind, l) })
	}
}

func (w *Window) remove(kind listenerKind, l *listener) {
	l.removed.Store(true)

	w.mu.Lock()
	defer w.mu.Unlock()

	ls := w.listeners[kind]
	for i, existing := range ls {
		if existing == l {
			next := make([]*listener, 0, len(ls)-1)
			next = append(next, ls[:i]...)
			next = append(next, ls[i+1:]...)
			w.listeners[kind] = next
			return
		}
	}
}

func (w *Window) snapshot(kind listenerKind) []*listener {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.listeners[kind]
}

// DispatchKey delivers e to the listeners for its type and reports
// whether any listener called PreventDefault.
func (w *Window) DispatchKey(e *key.Event) bool {
	if e == nil {
		return false
	}
	start := time.Now()

	kind := kindKeyDown
	if e.Type == key.KeyUp {
		kind = kindKeyUp
	}
	for _, l := range w.snapshot(kind) {
		if l.removed.Load() {
			continue
		}
		fn := l.onKey
		w.run(e.Type.String(), e, func() { fn(e) })
	}

	prevented := e.DefaultPrevented()
	w.metrics.recordKey(kind == kindKeyDown, prevented, time.Since(start))
	return prevented
}

// DispatchBlur tells listeners the window lost focus.
func (w *Window) DispatchBlur() {
	w.metrics.blurs.Add(1)
	for _, l := range w.snapshot(kindBlur) {
		if l.removed.Load() {
			continue
		}
		w.run("blur", nil, l.onBlur)
	}
}

// DispatchResize records the new size and tells listeners about it.
func (w *Window) DispatchResize(s Size) {
	w.mu.Lock()
	w.size = s
	w.mu.Unlock()

	w.metrics.resizes.Add(1)
	for _, l := range w.snapshot(kindResize) {
		if l.removed.Load() {
			continue
		}
		fn := l.onSize
		w.run("resize", s, func() { fn(s) })
	}
}

// run invokes a listener; a panicking listener is logged and does not
// stop the remaining ones.
func (w *Window) run(name string, payload any, fn func()) {
	res := dispatch.Call(context.Background(), payload, listenerFunc(fn))
	if res.Panicked {
		w.metrics.listenerPanics.Add(1)
		w.logger.Error().
			Str("event", name).
			Interface("panic", res.PanicValue).
			Bytes("stack", res.PanicStack).
			Msg("window listener panicked")
	}
}

type listenerFunc func()

func (f listenerFunc) Handle(context.Context, any) error {
	f()
	return nil
}

// Size returns the last size dispatched.
func (w *Window) Size() Size {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

// ListenerCount returns the number of registered listeners of all kinds.
func (w *Window) ListenerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, ls := range w.listeners {
		n += len(ls)
	}
	return n
}

// Metrics returns the window's dispatch metrics.
func (w *Window) Metrics() *Metrics {
	return w.metrics
}
