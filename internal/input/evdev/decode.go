// Package evdev reads Linux input devices and feeds an input.Window.
//
// Unlike a terminal, evdev reports real key releases and auto-repeat, so
// chords and repeat filtering see the same event stream a browser would.
// Reading /dev/input requires membership in the input group.
package evdev

import (
	"encoding/binary"
	"time"

	"github.com/dassana-io/web-utils/internal/input/key"
)

// Size of struct input_event on 64-bit Linux.
const inputEventSize = 24

const (
	evKey = 1

	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

type keyInfo struct {
	key     string
	shifted string
	code    string
}

// keycodes maps Linux KEY_* codes to DOM key values and codes.
var keycodes = map[uint16]keyInfo{
	1:   {key.Escape, "", "Escape"},
	2:   {"1", "!", "Digit1"},
	3:   {"2", "@", "Digit2"},
	4:   {"3", "#", "Digit3"},
	5:   {"4", "$", "Digit4"},
	6:   {"5", "%", "Digit5"},
	7:   {"6", "^", "Digit6"},
	8:   {"7", "&", "Digit7"},
	9:   {"8", "*", "Digit8"},
	10:  {"9", "(", "Digit9"},
	11:  {"0", ")", "Digit0"},
	12:  {"-", "_", "Minus"},
	13:  {"=", "+", "Equal"},
	14:  {key.Backspace, "", "Backspace"},
	15:  {key.Tab, "", "Tab"},
	16:  {"q", "Q", "KeyQ"},
	17:  {"w", "W", "KeyW"},
	18:  {"e", "E", "KeyE"},
	19:  {"r", "R", "KeyR"},
	20:  {"t", "T", "KeyT"},
	21:  {"y", "Y", "KeyY"},
	22:  {"u", "U", "KeyU"},
	23:  {"i", "I", "KeyI"},
	24:  {"o", "O", "KeyO"},
	25:  {"p", "P", "KeyP"},
	26:  {"[", "{", "BracketLeft"},
	27:  {"]", "}", "BracketRight"},
	28:  {key.Enter, "", "Enter"},
	29:  {key.Control, "", "ControlLeft"},
	30:  {"a", "A", "KeyA"},
	31:  {"s", "S", "KeyS"},
	32:  {"d", "D", "KeyD"},
	33:  {"f", "F", "KeyF"},
	34:  {"g", "G", "KeyG"},
	35:  {"h", "H", "KeyH"},
	36:  {"j", "J", "KeyJ"},
	37:  {"k", "K", "KeyK"},
	38:  {"l", "L", "KeyL"},
	39:  {";", ":", "Semicolon"},
	40:  {"'", "\"", "Quote"},
	41:  {"`", "~", "Backquote"},
	42:  {key.Shift, "", "ShiftLeft"},
	43:  {"\\", "|", "Backslash"},
	44:  {"z", "Z", "KeyZ"},
	45:  {"x", "X", "KeyX"},
	46:  {"c", "C", "KeyC"},
	47:  {"v", "V", "KeyV"},
	48:  {"b", "B", "KeyB"},
	49:  {"n", "N", "KeyN"},
	50:  {"m", "M", "KeyM"},
	51:  {",", "<", "Comma"},
	52:  {".", ">", "Period"},
	53:  {"/", "?", "Slash"},
	54:  {key.Shift, "", "ShiftRight"},
	56:  {key.Alt, "", "AltLeft"},
	57:  {key.Space, "", "Space"},
	58:  {key.CapsLock, "", "CapsLock"},
	59:  {key.F1, "", "F1"},
	60:  {key.F2, "", "F2"},
	61:  {key.F3, "", "F3"},
	62:  {key.F4, "", "F4"},
	63:  {key.F5, "", "F5"},
	64:  {key.F6, "", "F6"},
	65:  {key.F7, "", "F7"},
	66:  {key.F8, "", "F8"},
	67:  {key.F9, "", "F9"},
	68:  {key.F10, "", "F10"},
	69:  {key.NumLock, "", "NumLock"},
	70:  {key.ScrollLock, "", "ScrollLock"},
	87:  {key.F11, "", "F11"},
	88:  {key.F12, "", "F12"},
	97:  {key.Control, "", "ControlRight"},
	99:  {key.PrintScreen, "", "PrintScreen"},
	100: {key.Alt, "", "AltRight"},
	102: {key.Home, "", "Home"},
	103: {key.ArrowUp, "", "ArrowUp"},
	104: {key.PageUp, "", "PageUp"},
	105: {key.ArrowLeft, "", "ArrowLeft"},
	106: {key.ArrowRight, "", "ArrowRight"},
	107: {key.End, "", "End"},
	108: {key.ArrowDown, "", "ArrowDown"},
	109: {key.PageDown, "", "PageDown"},
	110: {key.Insert, "", "Insert"},
	111: {key.Delete, "", "Delete"},
	119: {key.Pause, "", "Pause"},
	125: {key.Meta, "", "MetaLeft"},
	126: {key.Meta, "", "MetaRight"},
}

// Decoder turns raw input_event records into key events, tracking which
// modifiers are held.
type Decoder struct {
	held map[string]int // modifier key -> number of physical keys down
}

// NewDecoder creates a decoder with no modifiers held.
func NewDecoder() *Decoder {
	return &Decoder{held: make(map[string]int)}
}

// Decode converts every complete record in buf. Non-key records and
// unknown key codes are skipped; a trailing partial record is ignored.
func (d *Decoder) Decode(buf []byte) []*key.Event {
	var events []*key.Event
	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		if e := d.decodeOne(buf[i : i+inputEventSize]); e != nil {
			events = append(events, e)
		}
	}
	return events
}

func (d *Decoder) decodeOne(rec []byte) *key.Event {
	evType := binary.LittleEndian.Uint16(rec[16:])
	evCode := binary.LittleEndian.Uint16(rec[18:])
	evValue := int32(binary.LittleEndian.Uint32(rec[20:]))

	if evType != evKey {
		return nil
	}
	info, ok := keycodes[evCode]
	if !ok {
		return nil
	}

	sec := int64(binary.LittleEndian.Uint64(rec[0:]))
	usec := int64(binary.LittleEndian.Uint64(rec[8:]))
	ts := time.Unix(sec, usec*int64(time.Microsecond))

	e := &key.Event{Key: info.key, Code: info.code, Timestamp: ts}
	mod := key.ModifierOf(info.key)

	switch evValue {
	case valuePress:
		e.Type = key.KeyDown
		if mod != key.ModNone {
			d.held[info.key]++
		}
	case valueRepeat:
		e.Type = key.KeyDown
		e.Repeat = true
	case valueRelease:
		e.Type = key.KeyUp
		if mod != key.ModNone && d.held[info.key] > 0 {
			d.held[info.key]--
		}
	default:
		return nil
	}

	e.Modifiers = d.Modifiers()
	if info.shifted != "" && e.Modifiers.Has(key.ModShift) {
		e.Key = info.shifted
	}
	return e
}

// Modifiers returns the modifiers currently held.
func (d *Decoder) Modifiers() key.Modifier {
	var m key.Modifier
	for k, n := range d.held {
		if n > 0 {
			m = m.With(key.ModifierOf(k))
		}
	}
	return m
}

// Reset forgets held modifiers, e.g. after a device is lost.
func (d *Decoder) Reset() {
	clear(d.held)
}
