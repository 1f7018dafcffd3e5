package timing

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncer_DeliversLatest(t *testing.T) {
	got := make(chan string, 4)
	d := NewDebouncer(30*time.Millisecond, func(v string) { got <- v })
	defer d.Stop()

	d.Push("a")
	d.Push("ab")
	d.Push("abc")

	select {
	case v := <-got:
		if v != "abc" {
			t.Errorf("delivered %q, want %q", v, "abc")
		}
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}

	select {
	case v := <-got:
		t.Errorf("unexpected second delivery %q", v)
	case <-time.After(80 * time.Millisecond):
	}

	if d.Fired() != 1 {
		t.Errorf("Fired() = %d, want 1", d.Fired())
	}
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func(int) {})
	if d.delay != DefaultDebounceDelay {
		t.Errorf("delay = %v, want %v", d.delay, DefaultDebounceDelay)
	}
	d.SetDelay(-1)
	if d.delay != DefaultDebounceDelay {
		t.Errorf("delay after SetDelay(-1) = %v", d.delay)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var got []int
	d := NewDebouncer(time.Hour, func(v int) { got = append(got, v) })

	if d.Flush() {
		t.Error("Flush() with nothing pending should return false")
	}

	d.Push(1)
	d.Push(2)
	if !d.Pending() {
		t.Fatal("Pending() should be true after Push")
	}
	if !d.Flush() {
		t.Fatal("Flush() should return true")
	}
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got %v, want [2]", got)
	}
	if d.Pending() {
		t.Error("Pending() should be false after Flush")
	}
}

func TestDebouncer_CancelAndStop(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := NewDebouncer(20*time.Millisecond, func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	d.Push(1)
	d.Cancel()
	d.Stop()
	d.Push(2)

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if d.Pending() {
		t.Error("stopped debouncer should not hold a value")
	}
}

func TestPrevious(t *testing.T) {
	var p Previous[int]

	if _, ok := p.Get(); ok {
		t.Error("Get() before any update should report false")
	}

	if _, ok := p.Update(1); ok {
		t.Error("first Update should report no previous value")
	}

	prev, ok := p.Update(2)
	if !ok || prev != 1 {
		t.Errorf("Update(2) = %d, %v; want 1, true", prev, ok)
	}

	prev, ok = p.Get()
	if !ok || prev != 1 {
		t.Errorf("Get() = %d, %v; want 1, true", prev, ok)
	}
	cur, _ := p.Current()
	if cur != 2 {
		t.Errorf("Current() = %d, want 2", cur)
	}
}

func TestStopwatch_Lifecycle(t *testing.T) {
	sw := NewStopwatch(5*time.Millisecond, nil)

	if sw.Running() {
		t.Fatal("new stopwatch should not be running")
	}

	sw.Start(false)
	time.Sleep(40 * time.Millisecond)
	sw.Pause()

	paused := sw.Elapsed()
	if paused <= 0 {
		t.Fatalf("Elapsed() = %v, want > 0 after running", paused)
	}
	if paused%(5*time.Millisecond) != 0 {
		t.Errorf("Elapsed() = %v, want a whole number of ticks", paused)
	}

	time.Sleep(20 * time.Millisecond)
	if sw.Elapsed() != paused {
		t.Errorf("Elapsed() moved while paused: %v -> %v", paused, sw.Elapsed())
	}

	sw.Resume()
	if !sw.Running() {
		t.Error("Resume() should restart ticking")
	}
	time.Sleep(20 * time.Millisecond)
	if sw.Elapsed() <= paused {
		t.Error("Elapsed() should grow after Resume")
	}

	sw.Reset()
	if sw.Running() || sw.Elapsed() != 0 {
		t.Errorf("after Reset: running=%v elapsed=%v", sw.Running(), sw.Elapsed())
	}
}

func TestStopwatch_StartReset(t *testing.T) {
	ticks := make(chan time.Duration, 64)
	sw := NewStopwatch(5*time.Millisecond, func(d time.Duration) {
		select {
		case ticks <- d:
		default:
		}
	})
	defer sw.Reset()

	sw.Start(false)
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}
	sw.Pause()

	sw.Start(true)
	sw.Pause()
	if sw.Elapsed() > 5*time.Millisecond {
		t.Errorf("Start(true) should zero elapsed time, got %v", sw.Elapsed())
	}
}

func TestStopwatch_DefaultInterval(t *testing.T) {
	sw := NewStopwatch(0, nil)
	if sw.interval != DefaultStopwatchInterval {
		t.Errorf("interval = %v, want %v", sw.interval, DefaultStopwatchInterval)
	}
}
