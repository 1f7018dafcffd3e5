// Package key provides keyboard event types and key name handling.
//
// Keys are identified by their DOM key values: "Escape", "Enter", "Meta",
// "ArrowUp", "a", " ". Every source (terminal, evdev, tests) produces
// events carrying these values so that shortcuts compare plain strings.
//
//   - Event: a keydown or keyup with modifiers, repeat flag and timestamp
//   - Modifier: bitset of Shift, Control, Alt and Meta
//   - Normalize: maps aliases such as "esc", "ctrl" or "cmd" to key values
//   - Parse: reads "Meta+a" or "<C-x>" into an ordered list of keys
//   - Label and ModifierKeys: operating system specific display labels
package key
