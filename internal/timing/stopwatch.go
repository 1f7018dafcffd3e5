package timing

import (
	"sync"
	"time"
)

// DefaultStopwatchInterval is the tick granularity used when none is given.
const DefaultStopwatchInterval = 10 * time.Millisecond

// Stopwatch accumulates elapsed time in whole ticks while running.
// Elapsed advances by the interval once per tick, so it never reports a
// partial tick.
type Stopwatch struct {
	mu       sync.Mutex
	interval time.Duration
	elapsed  time.Duration
	active   bool
	paused   bool
	ticker   *time.Ticker
	done     chan struct{}
	onTick   func(time.Duration)
}

// NewStopwatch creates an idle stopwatch. onTick, if non-nil, is called
// after every tick with the new elapsed time.
func NewStopwatch(interval time.Duration, onTick func(time.Duration)) *Stopwatch {
	if interval <= 0 {
		interval = DefaultStopwatchInterval
	}
	return &Stopwatch{interval: interval, paused: true, onTick: onTick}
}

// Start begins ticking. With reset set the elapsed time is zeroed first.
func (s *Stopwatch) Start(reset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reset {
		s.elapsed = 0
	}
	s.active = true
	s.paused = false
	s.startLocked()
}

// Pause stops ticking but keeps the elapsed time.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = true
	s.stopLocked()
}

// Resume continues a paused stopwatch. It has no effect before Start.
func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		s.paused = false
		return
	}
	s.paused = false
	s.startLocked()
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.paused = true
	s.elapsed = 0
	s.stopLocked()
}

// Elapsed returns the accumulated time.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Running reports whether the stopwatch is ticking.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && !s.paused
}

func (s *Stopwatch) startLocked() {
	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	go s.run(s.ticker, s.done)
}

func (s *Stopwatch) stopLocked() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
}

func (s *Stopwatch) run(t *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-t.C:
			s.mu.Lock()
			select {
			case <-done:
				s.mu.Unlock()
				return
			default:
			}
			s.elapsed += s.interval
			elapsed := s.elapsed
			fn := s.onTick
			s.mu.Unlock()

			if fn != nil {
				fn(elapsed)
			}
		}
	}
}
