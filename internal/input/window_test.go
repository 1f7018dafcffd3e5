package input

import (
	"testing"

	"github.com/dassana-io/web-utils/internal/input/key"
)

func TestWindow_DispatchKey(t *testing.T) {
	w := NewWindow()
	var downs, ups []string

	w.OnKeyDown(func(e *key.Event) { downs = append(downs, e.Key) })
	w.OnKeyUp(func(e *key.Event) { ups = append(ups, e.Key) })

	w.DispatchKey(key.Down("a"))
	w.DispatchKey(key.Up("a"))
	w.DispatchKey(key.Down(key.Escape))

	if len(downs) != 2 || downs[0] != "a" || downs[1] != key.Escape {
		t.Errorf("downs = %v", downs)
	}
	if len(ups) != 1 || ups[0] != "a" {
		t.Errorf("ups = %v", ups)
	}

	snap := w.Metrics().Snapshot()
	if snap.KeyDowns != 2 || snap.KeyUps != 1 {
		t.Errorf("unexpected metrics %+v", snap)
	}
}

func TestWindow_OnKeyByType(t *testing.T) {
	w := NewWindow()
	calls := 0
	w.OnKey(key.KeyUp, func(e *key.Event) { calls++ })

	w.DispatchKey(key.Down("x"))
	w.DispatchKey(key.Up("x"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWindow_PreventDefault(t *testing.T) {
	w := NewWindow()
	w.OnKeyDown(func(e *key.Event) {
		if e.Key == "s" {
			e.PreventDefault()
		}
	})

	if !w.DispatchKey(key.Down("s")) {
		t.Error("expected default prevented for s")
	}
	if w.DispatchKey(key.Down("d")) {
		t.Error("expected default not prevented for d")
	}
	if w.Metrics().Snapshot().Prevented != 1 {
		t.Error("expected one prevented event recorded")
	}
	if w.DispatchKey(nil) {
		t.Error("nil event should not report prevented")
	}
}

func TestWindow_Release(t *testing.T) {
	w := NewWindow()
	calls := 0
	release := w.OnKeyDown(func(e *key.Event) { calls++ })

	w.DispatchKey(key.Down("a"))
	release()
	release()
	w.DispatchKey(key.Down("a"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if w.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", w.ListenerCount())
	}
}

func TestWindow_ReleaseDuringDispatch(t *testing.T) {
	w := NewWindow()
	var releaseSecond Release
	secondCalls := 0

	w.OnKeyDown(func(e *key.Event) { releaseSecond() })
	releaseSecond = w.OnKeyDown(func(e *key.Event) { secondCalls++ })

	w.DispatchKey(key.Down("a"))
	if secondCalls != 0 {
		t.Errorf("listener released mid-dispatch was called %d times", secondCalls)
	}
}

func TestWindow_BlurAndResize(t *testing.T) {
	w := NewWindow(WithSize(Size{Width: 80, Height: 24}))
	blurs := 0
	var sizes []Size

	w.OnBlur(func() { blurs++ })
	w.OnResize(func(s Size) { sizes = append(sizes, s) })

	if w.Size() != (Size{Width: 80, Height: 24}) {
		t.Errorf("initial Size() = %+v", w.Size())
	}

	w.DispatchBlur()
	w.DispatchResize(Size{Width: 120, Height: 40})

	if blurs != 1 {
		t.Errorf("blurs = %d, want 1", blurs)
	}
	if len(sizes) != 1 || sizes[0].Width != 120 {
		t.Errorf("sizes = %v", sizes)
	}
	if w.Size().Height != 40 {
		t.Errorf("Size() = %+v after resize", w.Size())
	}
}

func TestWindow_ListenerPanicIsolated(t *testing.T) {
	w := NewWindow()
	after := 0

	w.OnKeyDown(func(e *key.Event) { panic("boom") })
	w.OnKeyDown(func(e *key.Event) { after++ })

	w.DispatchKey(key.Down("a"))

	if after != 1 {
		t.Errorf("listener after panic called %d times, want 1", after)
	}
	if w.Metrics().Snapshot().ListenerPanics != 1 {
		t.Error("expected listener panic to be counted")
	}
}

func TestMetrics_Reset(t *testing.T) {
	w := NewWindow()
	w.DispatchKey(key.Down("a"))
	w.DispatchBlur()

	m := w.Metrics()
	m.Reset()
	snap := m.Snapshot()
	if snap.KeyDowns != 0 || snap.Blurs != 0 || snap.PeakLatency != 0 {
		t.Errorf("expected zeroed metrics, got %+v", snap)
	}
}
