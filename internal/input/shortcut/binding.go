package shortcut

import (
	"errors"
	"fmt"

	"github.com/dassana-io/web-utils/internal/input/key"
)

// Registration errors.
var (
	// ErrInvalidBinding is matched by every configuration error.
	ErrInvalidBinding = errors.New("invalid shortcut")

	ErrNilBinding        = fmt.Errorf("%w: binding is nil", ErrInvalidBinding)
	ErrNilCallback       = fmt.Errorf("%w: callback is nil", ErrInvalidBinding)
	ErrEmptyKey          = fmt.Errorf("%w: empty key", ErrInvalidBinding)
	ErrInvalidTrigger    = fmt.Errorf("%w: trigger must be keydown or keyup", ErrInvalidBinding)
	ErrDuplicateChordKey = fmt.Errorf("%w: chord keys must differ", ErrInvalidBinding)
	ErrNilWindow         = errors.New("window is nil")
)

// Binding is either Single or Chord.
type Binding interface {
	// String describes the binding, e.g. "keydown Escape" or "Meta+k".
	String() string

	binding()
}

// Single fires on one key. On selects keydown or keyup; the zero value
// means keydown.
type Single struct {
	Key string
	On  key.Type
}

func (s Single) String() string {
	on := s.On
	if on == 0 {
		on = key.KeyDown
	}
	return on.String() + " " + key.Format([]string{s.Key})
}

func (Single) binding() {}

func (s Single) normalize() (Single, error) {
	s.Key = key.Normalize(s.Key)
	if s.Key == "" {
		return s, ErrEmptyKey
	}
	switch s.On {
	case 0:
		s.On = key.KeyDown
	case key.KeyDown, key.KeyUp:
	default:
		return s, ErrInvalidTrigger
	}
	return s, nil
}

// Chord fires when Keys[1] goes down while Keys[0] is held.
type Chord struct {
	Keys [2]string
}

// NewChord creates a chord binding from two key names.
func NewChord(first, second string) Chord {
	return Chord{Keys: [2]string{first, second}}
}

func (c Chord) String() string {
	return key.Format(c.Keys[:])
}

func (Chord) binding() {}

func (c Chord) normalize() (Chord, error) {
	for i := range c.Keys {
		c.Keys[i] = key.Normalize(c.Keys[i])
		if c.Keys[i] == "" {
			return c, ErrEmptyKey
		}
	}
	if c.Keys[0] == c.Keys[1] {
		return c, ErrDuplicateChordKey
	}
	return c, nil
}

// FromKeys builds a binding from parsed keys: one key gives a Single
// fired on trigger, two keys a Chord.
func FromKeys(keys []string, trigger key.Type) (Binding, error) {
	switch len(keys) {
	case 1:
		return Single{Key: keys[0], On: trigger}, nil
	case 2:
		return NewChord(keys[0], keys[1]), nil
	case 0:
		return nil, ErrEmptyKey
	default:
		return nil, fmt.Errorf("%w: %d keys, chords take exactly two", ErrInvalidBinding, len(keys))
	}
}
