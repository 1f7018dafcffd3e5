package timing

import "sync"

// Previous remembers the value seen before the most recent update.
type Previous[T any] struct {
	mu      sync.Mutex
	current T
	prev    T
	hasCur  bool
	hasPrev bool
}

// Update stores v and returns the value it replaced. ok is false on the
// first update.
func (p *Previous[T]) Update(v T) (prev T, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prev, p.hasPrev = p.current, p.hasCur
	p.current, p.hasCur = v, true
	return p.prev, p.hasPrev
}

// Get returns the value from before the last update.
func (p *Previous[T]) Get() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prev, p.hasPrev
}

// Current returns the most recently stored value.
func (p *Previous[T]) Current() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.hasCur
}
