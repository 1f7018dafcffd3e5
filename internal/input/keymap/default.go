package keymap

// Action names understood by the webutils demo.
const (
	ActionQuit         = "app.quit"
	ActionDismiss      = "app.dismiss"
	ActionThemeToggle  = "theme.toggle"
	ActionDrawerToggle = "drawer.toggle"
	ActionLogout       = "auth.logout"
	ActionNotify       = "notify"
)

// Default returns the built-in keymap.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "q", On: "keyup", Action: ActionQuit, Description: "Quit", Category: "App"},
			{Keys: "Escape", On: "keyup", Action: ActionDismiss, Description: "Close drawer", Category: "App", When: "drawerOpen"},
			{Keys: "Control+t", Action: ActionThemeToggle, Description: "Toggle theme", Category: "Theme", PreventDefault: true},
			{Keys: "Control+d", Action: ActionDrawerToggle, Description: "Toggle drawer", Category: "Layout"},
			{Keys: "Control+l", Action: ActionLogout, Description: "Log out", Category: "App", When: "loggedIn"},
			{
				Keys:        "i",
				Action:      ActionNotify,
				Args:        map[string]any{"severity": "info", "message": "Hello from the keyboard"},
				Description: "Show an info notification",
				Category:    "Notifications",
			},
		},
	}
}
