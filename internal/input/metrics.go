package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks window dispatch counts and latency.
type Metrics struct {
	keyDowns       atomic.Uint64
	keyUps         atomic.Uint64
	blurs          atomic.Uint64
	resizes        atomic.Uint64
	prevented      atomic.Uint64
	listenerPanics atomic.Uint64

	// Latency samples in a circular buffer.
	mu         sync.RWMutex
	latencies  []time.Duration
	latencyIdx int

	peakLatency atomic.Int64
	startTime   time.Time
}

const maxLatencySamples = 1000

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		latencies: make([]time.Duration, maxLatencySamples),
		startTime: time.Now(),
	}
}

func (m *Metrics) recordKey(down bool, prevented bool, latency time.Duration) {
	if down {
		m.keyDowns.Add(1)
	} else {
		m.keyUps.Add(1)
	}
	if prevented {
		m.prevented.Add(1)
	}
	m.recordLatency(latency)
}

func (m *Metrics) recordLatency(latency time.Duration) {
	ns := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if ns <= current || m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % len(m.latencies)
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	KeyDowns       uint64
	KeyUps         uint64
	Blurs          uint64
	Resizes        uint64
	Prevented      uint64
	ListenerPanics uint64

	AvgLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, 0, len(m.latencies))
	for _, l := range m.latencies {
		if l > 0 {
			latencies = append(latencies, l)
		}
	}
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		KeyDowns:       m.keyDowns.Load(),
		KeyUps:         m.keyUps.Load(),
		Blurs:          m.blurs.Load(),
		Resizes:        m.resizes.Load(),
		Prevented:      m.prevented.Load(),
		ListenerPanics: m.listenerPanics.Load(),
		PeakLatency:    time.Duration(m.peakLatency.Load()),
		Uptime:         time.Since(m.startTime),
	}
	snap.AvgLatency, snap.P99Latency = latencyStats(latencies)
	return snap
}

func latencyStats(latencies []time.Duration) (avg, p99 time.Duration) {
	if len(latencies) == 0 {
		return 0, 0
	}

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	idx := int(float64(len(latencies)) * 0.99)
	if idx >= len(latencies) {
		idx = len(latencies) - 1
	}
	return avg, latencies[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyDowns.Store(0)
	m.keyUps.Store(0)
	m.blurs.Store(0)
	m.resizes.Store(0)
	m.prevented.Store(0)
	m.listenerPanics.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
