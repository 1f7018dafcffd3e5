// Package input routes keyboard, focus and resize events to listeners.
//
// A Window plays the part of the browser window: sources push events into
// it and components attach listeners that are released when the component
// goes away.
//
//	w := input.NewWindow()
//	release := w.OnKeyDown(func(e *key.Event) { ... })
//	defer release()
//
//	w.DispatchKey(key.Down("Escape"))
//	w.DispatchBlur()
//
// Sources live in sub-packages: terminal reads a tcell screen and evdev
// reads Linux input devices. Shortcut recognition is in the shortcut
// sub-package, keymap files in keymap.
package input
