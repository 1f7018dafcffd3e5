// Package shortcut recognizes keyboard shortcuts on an input.Window.
//
// A shortcut is either a Single key, fired on keydown or keyup, or a
// two-key Chord, fired when the second key goes down while the first is
// held. Key-repeat events never fire a shortcut. Chord state is dropped
// when the first key is released, when the window loses focus and after
// the chord fires.
//
//	s, err := shortcut.Register(w, shortcut.Config{
//	    Binding:  shortcut.Chord{Keys: [2]string{"Meta", "k"}},
//	    Callback: openSearch,
//	})
//	if err != nil {
//	    return err
//	}
//	defer s.Release()
//
// Chords are limited to two keys. Some keyboards and operating systems
// do not report keyup for a key released while Meta is held, which
// makes longer sequences unreliable.
package shortcut
