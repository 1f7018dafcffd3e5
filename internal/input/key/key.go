package key

import (
	"strings"
	"unicode/utf8"
)

// Named key values.
const (
	Unidentified = "Unidentified"

	Escape    = "Escape"
	Enter     = "Enter"
	Tab       = "Tab"
	Backspace = "Backspace"
	Delete    = "Delete"
	Insert    = "Insert"
	Home      = "Home"
	End       = "End"
	PageUp    = "PageUp"
	PageDown  = "PageDown"

	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"

	F1  = "F1"
	F2  = "F2"
	F3  = "F3"
	F4  = "F4"
	F5  = "F5"
	F6  = "F6"
	F7  = "F7"
	F8  = "F8"
	F9  = "F9"
	F10 = "F10"
	F11 = "F11"
	F12 = "F12"

	Space       = " "
	Pause       = "Pause"
	PrintScreen = "PrintScreen"
	ScrollLock  = "ScrollLock"
	NumLock     = "NumLock"
	CapsLock    = "CapsLock"

	Shift   = "Shift"
	Control = "Control"
	Alt     = "Alt"
	Meta    = "Meta"
)

// aliases maps lowercase names to key values.
var aliases = map[string]string{
	"escape":      Escape,
	"esc":         Escape,
	"enter":       Enter,
	"return":      Enter,
	"cr":          Enter,
	"tab":         Tab,
	"backspace":   Backspace,
	"bs":          Backspace,
	"delete":      Delete,
	"del":         Delete,
	"insert":      Insert,
	"ins":         Insert,
	"home":        Home,
	"end":         End,
	"pageup":      PageUp,
	"pgup":        PageUp,
	"pagedown":    PageDown,
	"pgdn":        PageDown,
	"up":          ArrowUp,
	"arrowup":     ArrowUp,
	"down":        ArrowDown,
	"arrowdown":   ArrowDown,
	"left":        ArrowLeft,
	"arrowleft":   ArrowLeft,
	"right":       ArrowRight,
	"arrowright":  ArrowRight,
	"f1":          F1,
	"f2":          F2,
	"f3":          F3,
	"f4":          F4,
	"f5":          F5,
	"f6":          F6,
	"f7":          F7,
	"f8":          F8,
	"f9":          F9,
	"f10":         F10,
	"f11":         F11,
	"f12":         F12,
	"space":       Space,
	"spacebar":    Space,
	"pause":       Pause,
	"printscreen": PrintScreen,
	"scrolllock":  ScrollLock,
	"numlock":     NumLock,
	"capslock":    CapsLock,
	"shift":       Shift,
	"ctrl":        Control,
	"control":     Control,
	"alt":         Alt,
	"option":      Alt,
	"opt":         Alt,
	"meta":        Meta,
	"cmd":         Meta,
	"command":     Meta,
	"win":         Meta,
	"super":       Meta,
}

// Normalize returns the key value for name. Known aliases are matched
// case-insensitively. Single characters are returned unchanged, so "A"
// and "a" stay distinct just as they do in DOM events. Unknown multi
// character names are returned trimmed.
func Normalize(name string) string {
	if name == Space {
		return Space
	}
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) == 1 {
		return name
	}
	if k, ok := aliases[strings.ToLower(name)]; ok {
		return k
	}
	return name
}

// IsKnown reports whether k is a single character or a named key value.
func IsKnown(k string) bool {
	if utf8.RuneCountInString(k) == 1 {
		return true
	}
	if k == "" {
		return false
	}
	v, ok := aliases[strings.ToLower(k)]
	return ok && v == k
}

// IsModifier reports whether k is Shift, Control, Alt or Meta.
func IsModifier(k string) bool {
	return ModifierOf(k) != ModNone
}

// IsFunctionKey reports whether k is F1 through F12.
func IsFunctionKey(k string) bool {
	switch k {
	case F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12:
		return true
	}
	return false
}

// IsArrowKey reports whether k is an arrow key.
func IsArrowKey(k string) bool {
	switch k {
	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight:
		return true
	}
	return false
}

// IsNavigationKey reports whether k moves a cursor or viewport.
func IsNavigationKey(k string) bool {
	return IsArrowKey(k) || k == Home || k == End || k == PageUp || k == PageDown
}
