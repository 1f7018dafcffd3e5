package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dassana-io/web-utils/internal/format"
	"github.com/dassana-io/web-utils/internal/input/keymap"
	"github.com/dassana-io/web-utils/internal/theme"
)

// Role selects a palette color for a line.
type Role string

// Line roles. Severity names are roles too.
const (
	RoleText   Role = "text"
	RoleAccent Role = "accent"
	RoleMuted  Role = "muted"
)

// Line is one row of the demo screen.
type Line struct {
	Text string
	Role Role
}

// headerRows and footerRows frame the scrolling body.
const (
	headerRows = 2
	footerRows = 1
)

// View lays out the demo for a screen of the given rows.
func (app *Application) View(now time.Time, rows int) []Line {
	vp := app.viewport.State()
	cur := app.themes.Current()

	account := "signed out"
	if app.LoggedIn() {
		account = "signed in"
	}
	lines := []Line{
		{Text: fmt.Sprintf("webutils · %s theme · %s %dx%d · up %s · %s",
			cur, vp.Class, vp.Size.Width, vp.Size.Height, app.Uptime().Truncate(time.Second), account), Role: RoleAccent},
		{},
	}

	body := rows - headerRows - footerRows
	if body < 0 {
		body = 0
	}
	var content []Line
	drawer := app.DrawerOpen()
	if !drawer || !vp.IsMobile {
		content = append(content, app.noteLines(now)...)
	}
	if drawer {
		if len(content) > 0 {
			content = append(content, Line{})
		}
		content = append(content, app.drawerLines()...)
	}
	if len(content) > body {
		content = content[len(content)-body:]
	}
	lines = append(lines, content...)
	for len(lines) < rows-footerRows {
		lines = append(lines, Line{})
	}
	return append(lines, Line{Text: app.footer(), Role: RoleMuted})
}

func (app *Application) noteLines(now time.Time) []Line {
	notes := app.Notes()
	lines := []Line{{Text: format.Pluralize("notification", len(notes), true), Role: RoleText}}
	for _, n := range notes {
		lines = append(lines, Line{
			Text: fmt.Sprintf("  [%s] %s · %s", n.Severity, n.Message, format.RelativeTime(n.At, now)),
			Role: Role(n.Severity),
		})
	}
	return lines
}

func (app *Application) drawerLines() []Line {
	lines := []Line{{Text: "Shortcuts", Role: RoleAccent}}
	for _, cat := range keymap.GroupByCategory(app.keymap.Bindings) {
		lines = append(lines, Line{Text: "  " + cat.Name, Role: RoleMuted})
		for _, b := range cat.Bindings {
			desc := b.Description
			if desc == "" {
				desc = b.Action
			}
			lines = append(lines, Line{Text: fmt.Sprintf("    %-14s %s", b.Label(app.os), desc), Role: RoleText})
		}
	}
	return lines
}

func (app *Application) footer() string {
	var hints []string
	for _, b := range app.keymap.Bindings {
		switch b.Action {
		case keymap.ActionDrawerToggle:
			hints = append(hints, b.Label(app.os)+" shortcuts")
		case keymap.ActionQuit:
			hints = append(hints, b.Label(app.os)+" quit")
		}
	}
	return strings.Join(hints, " · ")
}

func (app *Application) setScreen(s tcell.Screen) {
	app.drawMu.Lock()
	app.screen = s
	app.drawMu.Unlock()
}

// draw renders the current view on the attached screen, if any.
func (app *Application) draw() {
	app.drawMu.Lock()
	screen := app.screen
	if screen != nil {
		_, rows := screen.Size()
		paint(screen, app.View(time.Now(), rows), theme.PaletteFor(app.themes.Current()))
		screen.Show()
	}
	app.drawMu.Unlock()

	app.mu.RLock()
	fn := app.onRedraw
	app.mu.RUnlock()
	if screen != nil && fn != nil {
		fn()
	}
}

func paint(screen tcell.Screen, lines []Line, p theme.Palette) {
	base := tcell.StyleDefault.Background(tcellColor(p.Background)).Foreground(tcellColor(p.Foreground))
	screen.SetStyle(base)
	screen.Clear()

	width, _ := screen.Size()
	for y, line := range lines {
		style := base.Foreground(tcellColor(roleColor(p, line.Role)))
		if line.Role == RoleAccent {
			style = style.Bold(true)
		}
		x := 0
		for _, r := range line.Text {
			if x >= width {
				break
			}
			screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
}

func roleColor(p theme.Palette, r Role) colorful.Color {
	switch r {
	case RoleAccent:
		return p.Accent
	case RoleMuted:
		return p.Muted
	case RoleText, "":
		return p.Foreground
	}
	return p.Severity(string(r))
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
