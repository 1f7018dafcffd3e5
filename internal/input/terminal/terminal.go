// Package terminal feeds tcell screen events into an input.Window.
//
// Terminals report a key press as a single event and never report
// releases, so each press is expanded into the sequence a browser would
// produce: modifier keydowns, the key's keydown and keyup, then modifier
// keyups in reverse order. Ctrl+X therefore reaches the window as
// keydown Control, keydown x, keyup x, keyup Control, and two-key chords
// such as Control+x work unchanged. Focus loss becomes a blur and screen
// resizes become resize events.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
)

// Source reads events from a tcell screen.
type Source struct {
	screen tcell.Screen
	window *input.Window
	logger zerolog.Logger
	after  func(ev tcell.Event)
	cellW  int
	cellH  int
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// WithAfter registers fn to run after every handled event, typically to
// redraw the screen.
func WithAfter(fn func(ev tcell.Event)) Option {
	return func(s *Source) {
		s.after = fn
	}
}

// WithCellSize reports resizes in pixels, assuming each terminal cell is
// w by h pixels. The default is one pixel per cell.
func WithCellSize(w, h int) Option {
	return func(s *Source) {
		if w > 0 && h > 0 {
			s.cellW, s.cellH = w, h
		}
	}
}

// New creates a source. The screen must already be initialized.
func New(screen tcell.Screen, w *input.Window, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		window: w,
		logger: zerolog.Nop(),
		cellW:  1,
		cellH:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls the screen until ctx is cancelled or the screen is finalized.
// Events already queued when ctx is cancelled are still delivered.
func (s *Source) Run(ctx context.Context) error {
	s.screen.EnableFocus()
	if w, h := s.screen.Size(); w > 0 || h > 0 {
		s.window.DispatchResize(s.size(w, h))
	}

	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		s.Handle(ev)
		if s.after != nil {
			s.after(ev)
		}
	}
}

// Handle converts one tcell event and dispatches it. It reports whether
// a key listener prevented the default action.
func (s *Source) Handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		prevented := false
		for _, ke := range Translate(e) {
			if s.window.DispatchKey(ke) {
				prevented = true
			}
		}
		s.logger.Debug().Str("key", e.Name()).Bool("prevented", prevented).Msg("key")
		return prevented

	case *tcell.EventResize:
		w, h := e.Size()
		s.window.DispatchResize(s.size(w, h))

	case *tcell.EventFocus:
		if !e.Focused {
			s.window.DispatchBlur()
		}
	}
	return false
}

func (s *Source) size(cols, rows int) input.Size {
	return input.Size{Width: cols * s.cellW, Height: rows * s.cellH}
}

// Translate expands a tcell key event into keydown and keyup events.
func Translate(e *tcell.EventKey) []*key.Event {
	k, mods := convertKey(e)
	ts := e.When()
	if ts.IsZero() {
		ts = time.Now()
	}

	modKeys := mods.Without(key.ModifierOf(k)).Keys()
	events := make([]*key.Event, 0, 2*len(modKeys)+2)

	held := key.ModNone
	for _, m := range modKeys {
		held = held.With(key.ModifierOf(m))
		events = append(events, &key.Event{Type: key.KeyDown, Key: m, Modifiers: held, Timestamp: ts})
	}
	events = append(events,
		&key.Event{Type: key.KeyDown, Key: k, Modifiers: mods, Timestamp: ts},
		&key.Event{Type: key.KeyUp, Key: k, Modifiers: mods, Timestamp: ts},
	)
	for i := len(modKeys) - 1; i >= 0; i-- {
		held = held.Without(key.ModifierOf(modKeys[i]))
		events = append(events, &key.Event{Type: key.KeyUp, Key: modKeys[i], Modifiers: held, Timestamp: ts})
	}
	return events
}

// convertKey returns the DOM key value and modifiers for a tcell event.
func convertKey(e *tcell.EventKey) (string, key.Modifier) {
	mods := convertMod(e.Modifiers())
	k, r := e.Key(), e.Rune()

	switch {
	case k == tcell.KeyRune:
		return string(r), mods
	case mods.Has(key.ModCtrl) && r >= 'a' && r <= 'z':
		return string(r), mods
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return string(rune('a' + (k - tcell.KeyCtrlA))), mods.With(key.ModCtrl)
	case k == tcell.KeyCtrlSpace:
		return key.Space, mods.With(key.ModCtrl)
	}

	if name, ok := namedKeys[k]; ok {
		return name, mods
	}
	if k >= tcell.KeySOH && k <= tcell.KeySUB {
		return string(rune('a' + (k - tcell.KeySOH))), mods.With(key.ModCtrl)
	}
	return key.Unidentified, mods
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape:    key.Escape,
	tcell.KeyEnter:     key.Enter,
	tcell.KeyTab:       key.Tab,
	tcell.KeyBacktab:   key.Tab,
	tcell.KeyBackspace: key.Backspace,
	tcell.KeyDEL:       key.Backspace,
	tcell.KeyDelete:    key.Delete,
	tcell.KeyInsert:    key.Insert,
	tcell.KeyHome:      key.Home,
	tcell.KeyEnd:       key.End,
	tcell.KeyPgUp:      key.PageUp,
	tcell.KeyPgDn:      key.PageDown,
	tcell.KeyUp:        key.ArrowUp,
	tcell.KeyDown:      key.ArrowDown,
	tcell.KeyLeft:      key.ArrowLeft,
	tcell.KeyRight:     key.ArrowRight,
	tcell.KeyF1:        key.F1,
	tcell.KeyF2:        key.F2,
	tcell.KeyF3:        key.F3,
	tcell.KeyF4:        key.F4,
	tcell.KeyF5:        key.F5,
	tcell.KeyF6:        key.F6,
	tcell.KeyF7:        key.F7,
	tcell.KeyF8:        key.F8,
	tcell.KeyF9:        key.F9,
	tcell.KeyF10:       key.F10,
	tcell.KeyF11:       key.F11,
	tcell.KeyF12:       key.F12,
	tcell.KeyPause:     key.Pause,
	tcell.KeyPrint:     key.PrintScreen,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
