// Package script runs small Lua actions bound to keyboard shortcuts.
//
// Scripts execute in a sandboxed gopher-lua state that only opens the base,
// table, string and math libraries. The globals available to a script are:
//
//	notify(severity, message)  -- emits a notification ("error", "info", ...)
//	emit(topic, value)         -- emits value on an arbitrary topic
//	theme()                    -- returns the current theme name
//	log(message)               -- writes message to the engine logger
//
// A keymap binding whose action is "script" carries its Lua source inline:
//
//	- keys: "g t"
//	  action: script
//	  script: |
//	    if theme() == "dark" then notify("info", "dark mode") end
package script
