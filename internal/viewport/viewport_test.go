package viewport

import (
	"testing"

	"github.com/dassana-io/web-utils/internal/input"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		width  int
		want   Class
		mobile bool
		tablet bool
	}{
		{0, ClassMobile, true, false},
		{480, ClassMobile, true, false},
		{481, ClassTablet, false, true},
		{834, ClassTablet, false, true},
		{835, ClassDesktop, false, false},
		{1439, ClassDesktop, false, false},
		{1440, ClassLarge, false, false},
		{2560, ClassLarge, false, false},
	}
	for _, tt := range tests {
		if got := Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.width, got, tt.want)
		}
		if IsMobile(tt.width) != tt.mobile || IsTablet(tt.width) != tt.tablet {
			t.Errorf("width %d: mobile=%v tablet=%v", tt.width, IsMobile(tt.width), IsTablet(tt.width))
		}
	}
}

func TestMediaSelectors(t *testing.T) {
	if got := MediaSelector(Tablet, true); got != "@media screen and (max-width: 834px)" {
		t.Errorf("MediaSelector(Tablet, max) = %q", got)
	}
	if got := MediaSelector(Mobile, false); got != "@media screen and (min-width: 480px)" {
		t.Errorf("MediaSelector(Mobile, min) = %q", got)
	}

	all := MediaSelectors()
	if len(all["max"]) != 3 || len(all["min"]) != 3 {
		t.Fatalf("MediaSelectors() = %v", all)
	}
	if all["min"][LargeScreen] != "@media screen and (min-width: 1440px)" {
		t.Errorf("min large = %q", all["min"][LargeScreen])
	}
}

func TestRemainingHeight(t *testing.T) {
	tests := []struct {
		h, top, extra, want int
	}{
		{900, 100, 0, 800},
		{900, 100, 50, 750},
		{100, 200, 0, 0},
	}
	for _, tt := range tests {
		if got := RemainingHeight(tt.h, tt.top, tt.extra); got != tt.want {
			t.Errorf("RemainingHeight(%d, %d, %d) = %d, want %d", tt.h, tt.top, tt.extra, got, tt.want)
		}
	}
}

func TestTracker(t *testing.T) {
	w := input.NewWindow(input.WithSize(input.Size{Width: 1024, Height: 768}))

	var calls []State
	tr := NewTracker(w, func(s State) { calls = append(calls, s) })

	if st := tr.State(); st.Class != ClassDesktop || st.Size.Height != 768 {
		t.Errorf("initial state = %+v", st)
	}

	w.DispatchResize(input.Size{Width: 400, Height: 700})
	st := tr.State()
	if !st.IsMobile || st.IsTablet || st.Class != ClassMobile {
		t.Errorf("after resize = %+v", st)
	}
	if len(calls) != 1 || calls[0].Size.Width != 400 {
		t.Errorf("onResize calls = %v", calls)
	}
	if got := tr.RemainingHeight(100, 20); got != 580 {
		t.Errorf("RemainingHeight() = %d, want 580", got)
	}

	tr.Close()
	w.DispatchResize(input.Size{Width: 800, Height: 600})
	if len(calls) != 1 || tr.State().Size.Width != 400 {
		t.Error("closed tracker should not follow resizes")
	}
}
