// Package keymap loads named shortcut bindings from YAML files and
// attaches them to an input.Window.
//
// A keymap file lists bindings. One key gives a single-key shortcut, two
// keys joined with "+" give a chord:
//
//	name: user
//	bindings:
//	  - keys: Escape
//	    on: keyup
//	    action: app.dismiss
//	  - keys: Control+t
//	    action: theme.toggle
//	    when: "!drawerOpen"
//	  - keys: Control+n
//	    action: script
//	    script: notify("info", "hello")
//
// "when" is a condition expression over flags held in a Context:
// name, !name, a && b, a || b and variable == value.
//
//	ctx := keymap.NewContext()
//	bound, err := keymap.Bind(w, km, ctx, resolve)
//	defer bound.Release()
package keymap
