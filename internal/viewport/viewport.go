// Package viewport classifies window sizes against the shared layout
// breakpoints and follows window resizes.
package viewport

import (
	"fmt"
	"sync"

	"github.com/dassana-io/web-utils/internal/input"
)

// Breakpoint is a layout width in pixels (or cells for a terminal).
type Breakpoint int

// Layout breakpoints.
const (
	Mobile      Breakpoint = 480
	Tablet      Breakpoint = 834
	LargeScreen Breakpoint = 1440
)

// Breakpoints lists every breakpoint in ascending order.
var Breakpoints = []Breakpoint{Mobile, Tablet, LargeScreen}

// Class is the layout class of a width.
type Class int

// Layout classes.
const (
	ClassMobile Class = iota
	ClassTablet
	ClassDesktop
	ClassLarge
)

func (c Class) String() string {
	switch c {
	case ClassMobile:
		return "mobile"
	case ClassTablet:
		return "tablet"
	case ClassDesktop:
		return "desktop"
	case ClassLarge:
		return "large"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Classify returns the class of width. Upper bounds are inclusive:
// 480 is mobile and 834 is tablet. Widths from 1440 up are large.
func Classify(width int) Class {
	switch {
	case width <= int(Mobile):
		return ClassMobile
	case width <= int(Tablet):
		return ClassTablet
	case width < int(LargeScreen):
		return ClassDesktop
	}
	return ClassLarge
}

// IsMobile reports whether width is at most the mobile breakpoint.
func IsMobile(width int) bool {
	return width <= int(Mobile)
}

// IsTablet reports whether width is above mobile and at most tablet.
func IsTablet(width int) bool {
	return !IsMobile(width) && width <= int(Tablet)
}

// MediaSelector returns the CSS media query for bp, as a max-width query
// when max is set and a min-width query otherwise.
func MediaSelector(bp Breakpoint, max bool) string {
	bound := "min"
	if max {
		bound = "max"
	}
	return fmt.Sprintf("@media screen and (%s-width: %dpx)", bound, int(bp))
}

// MediaSelectors returns every breakpoint's query keyed by "max" and "min".
func MediaSelectors() map[string]map[Breakpoint]string {
	out := map[string]map[Breakpoint]string{
		"max": make(map[Breakpoint]string, len(Breakpoints)),
		"min": make(map[Breakpoint]string, len(Breakpoints)),
	}
	for _, bp := range Breakpoints {
		out["max"][bp] = MediaSelector(bp, true)
		out["min"][bp] = MediaSelector(bp, false)
	}
	return out
}

// RemainingHeight is the height left below a container that starts at
// offsetTop, minus additionalOffset. It never goes below zero.
func RemainingHeight(windowHeight, offsetTop, additionalOffset int) int {
	if h := windowHeight - offsetTop - additionalOffset; h > 0 {
		return h
	}
	return 0
}

// State is a snapshot of the window size and its classification.
type State struct {
	Size     input.Size
	Class    Class
	IsMobile bool
	IsTablet bool
}

func stateOf(s input.Size) State {
	return State{
		Size:     s,
		Class:    Classify(s.Width),
		IsMobile: IsMobile(s.Width),
		IsTablet: IsTablet(s.Width),
	}
}

// Tracker follows a window's resize events.
type Tracker struct {
	mu       sync.Mutex
	state    State
	onResize func(State)
	release  input.Release
}

// NewTracker starts from the window's current size. onResize, if non-nil,
// runs after every resize with the new state.
func NewTracker(w *input.Window, onResize func(State)) *Tracker {
	t := &Tracker{
		state:    stateOf(w.Size()),
		onResize: onResize,
	}
	t.release = w.OnResize(t.handle)
	return t
}

func (t *Tracker) handle(s input.Size) {
	st := stateOf(s)
	t.mu.Lock()
	t.state = st
	fn := t.onResize
	t.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

// State returns the latest state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// RemainingHeight is RemainingHeight for the tracked window height.
func (t *Tracker) RemainingHeight(offsetTop, additionalOffset int) int {
	return RemainingHeight(t.State().Size.Height, offsetTop, additionalOffset)
}

// Close stops following the window.
func (t *Tracker) Close() {
	t.release()
}
