package key

import "strings"

// Modifier represents keyboard modifier keys held during an event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Keys returns the key values of the set modifiers in press order
// Control, Alt, Shift, Meta.
func (m Modifier) Keys() []string {
	var keys []string
	if m.Has(ModCtrl) {
		keys = append(keys, Control)
	}
	if m.Has(ModAlt) {
		keys = append(keys, Alt)
	}
	if m.Has(ModShift) {
		keys = append(keys, Shift)
	}
	if m.Has(ModMeta) {
		keys = append(keys, Meta)
	}
	return keys
}

// String returns a representation like "Control+Alt".
func (m Modifier) String() string {
	return strings.Join(m.Keys(), "+")
}

// ModifierOf returns the modifier bit for a key value, or ModNone.
func ModifierOf(k string) Modifier {
	switch k {
	case Shift:
		return ModShift
	case Control:
		return ModCtrl
	case Alt:
		return ModAlt
	case Meta:
		return ModMeta
	default:
		return ModNone
	}
}
