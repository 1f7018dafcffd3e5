// Package app wires the web utilities into the interactive webutils demo.
// It owns the emitter, client storage, theme tracker, keyboard window,
// keymap, script engine, viewport tracker, API client and widget cache,
// and manages their lifecycle.
package app

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/config"
	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/keymap"
	"github.com/dassana-io/web-utils/internal/script"
	"github.com/dassana-io/web-utils/internal/storage"
	"github.com/dassana-io/web-utils/internal/theme"
	"github.com/dassana-io/web-utils/internal/timing"
	"github.com/dassana-io/web-utils/internal/viewport"
)

// MaxNotes bounds the notification history.
const MaxNotes = 50

// Application is the central coordinator for all webutils components.
type Application struct {
	mu sync.RWMutex

	cfg    config.Config
	logger zerolog.Logger
	os     key.OS

	// ctx carries the emitter into actions and handlers.
	ctx    context.Context
	cancel context.CancelFunc

	// Core infrastructure
	emitter *event.Emitter
	subs    *event.Subscriber
	local   *storage.Local
	widgets *storage.WidgetCache
	client  *api.Client

	// Interaction
	themes   *theme.Tracker
	window   *input.Window
	keymap   *keymap.Keymap
	when     *keymap.Context
	bound    *keymap.Bound
	scripts  *script.Engine
	viewport *viewport.Tracker
	uptime   *timing.Stopwatch
	redraw   *timing.Debouncer[struct{}]

	// Rendering
	drawMu sync.Mutex
	screen tcell.Screen

	// State
	notes      []Note
	drawerOpen bool
	onRedraw   func()
	running    atomic.Bool
	closed     atomic.Bool
}

// Note is a notification received on one of the severity topics.
type Note struct {
	Severity event.Severity
	Message  string
	At       time.Time
}

// Options configures the application.
type Options struct {
	// Config holds resolved settings. The zero value uses config.Default.
	Config *config.Config

	// Logger receives component logs.
	Logger zerolog.Logger

	// Window receives key events. Nil creates one.
	Window *input.Window

	// HTTPClient replaces the API transport.
	HTTPClient *http.Client

	// Keymap replaces the built-in keymap. The configured keymap file is
	// still merged on top.
	Keymap *keymap.Keymap
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		cfg:    cfg,
		logger: opts.Logger,
		cancel: cancel,
		ctx:    ctx,
	}

	if err := app.bootstrap(opts); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Config returns the settings the application was built with.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Emitter returns the event emitter.
func (app *Application) Emitter() *event.Emitter {
	return app.emitter
}

// Storage returns the key/value store.
func (app *Application) Storage() *storage.Local {
	return app.local
}

// Widgets returns the widget cache.
func (app *Application) Widgets() *storage.WidgetCache {
	return app.widgets
}

// Client returns the API client.
func (app *Application) Client() *api.Client {
	return app.client
}

// Window returns the keyboard window.
func (app *Application) Window() *input.Window {
	return app.window
}

// Keymap returns the bound keymap.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// Theme returns the current theme.
func (app *Application) Theme() theme.Type {
	return app.themes.Current()
}

// Viewport returns the latest viewport state.
func (app *Application) Viewport() viewport.State {
	return app.viewport.State()
}

// Uptime returns how long Run has been running, paused while the
// terminal is unfocused.
func (app *Application) Uptime() time.Duration {
	return app.uptime.Elapsed()
}

// DrawerOpen reports whether the shortcut drawer is shown.
func (app *Application) DrawerOpen() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.drawerOpen
}

// LoggedIn reports whether a token is stored.
func (app *Application) LoggedIn() bool {
	if app.cfg.API.Token != "" {
		return true
	}
	_, ok := app.local.Get(api.TokenKey)
	return ok
}

// Notes returns the notification history, oldest first.
func (app *Application) Notes() []Note {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make([]Note, len(app.notes))
	copy(out, app.notes)
	return out
}

// IsRunning returns true if Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
