package key

import (
	"errors"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OS selects operating system specific key mappings.
type OS uint8

const (
	// OSWindows covers Windows and Linux keyboards.
	OSWindows OS = iota

	// OSMac covers macOS keyboards.
	OSMac
)

// CurrentOS returns the keyboard family of the running system.
func CurrentOS() OS {
	if runtime.GOOS == "darwin" {
		return OSMac
	}
	return OSWindows
}

// ErrUnknownOS is returned by ParseOS.
var ErrUnknownOS = errors.New("unknown os")

// ParseOS maps "mac", "darwin", "windows" and "linux" to an OS.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macos", "darwin":
		return OSMac, nil
	case "windows", "linux":
		return OSWindows, nil
	}
	return OSWindows, ErrUnknownOS
}

// String returns "mac" or "windows".
func (os OS) String() string {
	if os == OSMac {
		return "mac"
	}
	return "windows"
}

type mapping struct {
	key   string
	label string
}

// modifierMappings maps a portable modifier name to the key value and
// label used on each OS. "Mod" is the primary shortcut modifier.
var modifierMappings = map[string][2]mapping{
	"Mod":   {OSWindows: {Control, "Ctrl"}, OSMac: {Meta, "⌘"}},
	Control: {OSWindows: {Control, "Ctrl"}, OSMac: {Control, "⌃"}},
	Meta:    {OSWindows: {Meta, "Win"}, OSMac: {Meta, "⌘"}},
	Alt:     {OSWindows: {Alt, "Alt"}, OSMac: {Alt, "⌥"}},
	Shift:   {OSWindows: {Shift, "Shift"}, OSMac: {Shift, "⇧"}},
}

// Label returns the key value and display label for name on os.
// Modifiers map to their OS specific key and symbol; other keys keep
// their value and are labelled capitalized.
func Label(name string, os OS) (k, label string) {
	k = Normalize(name)
	if strings.EqualFold(name, "mod") {
		k = "Mod"
	}
	if m, ok := modifierMappings[k]; ok && int(os) < len(m) {
		return m[os].key, m[os].label
	}
	if k == Space {
		return k, "Space"
	}
	// Casers are stateful, so one is built per call.
	return k, cases.Title(language.Und).String(k)
}

// ModifierKeys maps names to key values for os and joins their labels
// with " + ".
func ModifierKeys(names []string, os OS) (keys []string, label string) {
	keys = make([]string, 0, len(names))
	labels := make([]string, 0, len(names))
	for _, n := range names {
		k, l := Label(n, os)
		keys = append(keys, k)
		labels = append(labels, l)
	}
	return keys, strings.Join(labels, " + ")
}
