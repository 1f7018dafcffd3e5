package timing

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is used when a Debouncer is created with a
// non-positive delay.
const DefaultDebounceDelay = 250 * time.Millisecond

// Debouncer delivers the most recent pushed value once no new value has
// arrived for the configured delay. Every Push restarts the wait.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	has     bool
	stopped bool
	fired   uint64
}

// NewDebouncer creates a debouncer that calls fn on its own goroutine.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push records v as the latest value and restarts the delay.
// Pushes after Stop are ignored.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = v
	d.has = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.has || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.has = false
	d.timer = nil
	d.fired++
	d.mu.Unlock()

	d.fn(v)
}

// Flush delivers a pending value immediately on the caller's goroutine.
// It reports whether a value was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	has := d.has && !d.stopped
	d.mu.Unlock()

	if has {
		d.fire()
	}
	return has
}

// Cancel drops a pending value without delivering it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.pending = zero
	d.has = false
}

// Stop cancels any pending value and ignores later pushes.
func (d *Debouncer[T]) Stop() {
	d.Cancel()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

// SetDelay changes the delay used by subsequent pushes.
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Pending reports whether a value is waiting to be delivered.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.has
}

// Fired returns how many values have been delivered.
func (d *Debouncer[T]) Fired() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired
}
