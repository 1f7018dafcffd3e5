package key

import (
	"fmt"
	"time"
)

// Type is the kind of keyboard event.
type Type uint8

const (
	// KeyDown is sent when a key is pressed, and again for each repeat.
	KeyDown Type = iota + 1

	// KeyUp is sent when a key is released.
	KeyUp
)

// String returns the DOM event name.
func (t Type) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// ParseType converts "keydown" or "keyup" to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "keydown":
		return KeyDown, nil
	case "keyup":
		return KeyUp, nil
	default:
		return 0, fmt.Errorf("%w: unknown event type %q", ErrInvalidSpec, s)
	}
}

// Event is a single keyboard event.
type Event struct {
	// Type is keydown or keyup.
	Type Type

	// Key is the DOM key value, e.g. "a", "Escape", "Meta".
	Key string

	// Code identifies the physical key when the source knows it.
	Code string

	// Repeat is true for keydowns generated by holding a key.
	Repeat bool

	// Modifiers contains the modifier keys held during the event.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented bool
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t Type, k string, mods Modifier) *Event {
	return &Event{
		Type:      t,
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// Down creates a keydown event.
func Down(k string) *Event {
	return NewEvent(KeyDown, k, ModNone)
}

// Up creates a keyup event.
func Up(k string) *Event {
	return NewEvent(KeyUp, k, ModNone)
}

// AsRepeat marks the event as generated by key repeat and returns it.
func (e *Event) AsRepeat() *Event {
	e.Repeat = true
	return e
}

// PreventDefault asks the source not to run its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// String returns a representation like "keydown Control+x".
func (e *Event) String() string {
	s := e.Type.String() + " "
	if mods := e.Modifiers.Without(ModifierOf(e.Key)); !mods.IsEmpty() {
		s += mods.String() + "+"
	}
	if e.Key == Space {
		s += "Space"
	} else {
		s += e.Key
	}
	if e.Repeat {
		s += " (repeat)"
	}
	return s
}
