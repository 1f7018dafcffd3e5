package app

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/keymap"
	"github.com/dassana-io/web-utils/internal/logging"
	"github.com/dassana-io/web-utils/internal/script"
	"github.com/dassana-io/web-utils/internal/storage"
	"github.com/dassana-io/web-utils/internal/theme"
	"github.com/dassana-io/web-utils/internal/timing"
	"github.com/dassana-io/web-utils/internal/viewport"
)

// frameTime coalesces redraw requests.
const frameTime = time.Second / 60

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	var err error
	cfg := app.cfg

	app.os = key.CurrentOS()
	if cfg.UI.OS != "" {
		if app.os, err = key.ParseOS(cfg.UI.OS); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}

	// 1. Emitter - messaging foundation
	app.emitter = event.New(event.WithLogger(logging.Component(app.logger, "event")))
	app.ctx = event.NewContext(app.ctx, app.emitter)

	// 2. Client storage
	if app.local, err = app.openLocal(); err != nil {
		return &InitError{Component: "storage", Err: err}
	}
	if _, ok := app.local.Get(theme.StorageKey); !ok && cfg.UI.Theme != theme.Default.String() {
		if err := app.local.Set(theme.StorageKey, cfg.UI.Theme); err != nil {
			return &InitError{Component: "storage", Err: err}
		}
	}
	app.widgets, err = storage.NewWidgetCache(cfg.WidgetDir(), cfg.Cache.TTL.Std(),
		storage.WithLogger(logging.Component(app.logger, "widgets")))
	if err != nil {
		return &InitError{Component: "widget cache", Err: err}
	}

	// 3. API client
	if app.client, err = app.newClient(opts.HTTPClient); err != nil {
		return &InitError{Component: "api", Err: err}
	}

	// 4. Theme tracker
	app.themes, err = theme.NewTracker(app.emitter, app.local,
		theme.WithLogger(logging.Component(app.logger, "theme")))
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}

	// 5. Redraw scheduling and uptime
	app.redraw = timing.NewDebouncer(frameTime, func(struct{}) { app.draw() })
	app.uptime = timing.NewStopwatch(time.Second, func(time.Duration) { app.requestRedraw() })
	app.themes.OnChange(func(theme.Type) { app.requestRedraw() })

	// 6. Window and viewport
	app.window = opts.Window
	if app.window == nil {
		app.window = input.NewWindow(input.WithLogger(logging.Component(app.logger, "input")))
	}
	app.viewport = viewport.NewTracker(app.window, func(viewport.State) { app.requestRedraw() })
	app.window.OnBlur(app.uptime.Pause)
	app.window.OnKeyDown(func(*key.Event) {
		if app.running.Load() && !app.uptime.Running() {
			app.uptime.Resume()
		}
	})

	// 7. Emitter subscriptions
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	// 8. Scripts
	app.scripts, err = script.New(app.emitter,
		script.WithLogger(logging.Component(app.logger, "script")),
		script.WithTheme(app.themes),
		script.WithTimeout(cfg.Script.Timeout.Std()),
	)
	if err != nil {
		return &InitError{Component: "script", Err: err}
	}

	// 9. Keymap
	km := opts.Keymap
	if km == nil {
		km = keymap.Default()
	}
	if cfg.Paths.Keymap != "" {
		user, err := keymap.NewLoader(logging.Component(app.logger, "keymap")).LoadFile(cfg.Paths.Keymap)
		if err != nil {
			return &InitError{Component: "keymap", Err: err}
		}
		km = km.Merge(user)
	}
	app.keymap = km
	app.when = keymap.NewContext()
	app.when.Set(condLoggedIn, app.LoggedIn())
	app.bound, err = keymap.Bind(app.window, km, app.when, app.scripts.Resolver(app.ctx, app.resolve))
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	return nil
}

func (app *Application) newClient(hc *http.Client) (*api.Client, error) {
	cfg := app.cfg.API
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout.Std()}
	}

	var tokens api.TokenSource = app.local
	if cfg.Token != "" {
		tokens = api.StaticToken(cfg.Token)
	}

	retry := api.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts

	return api.New(cfg.BaseURL,
		api.WithHTTPClient(hc),
		api.WithTokenSource(tokens),
		api.WithRetry(retry),
		api.WithLogger(logging.Component(app.logger, "api")),
	)
}

// openLocal opens client storage. A corrupt store file is moved aside and
// replaced by an empty store so startup falls back to defaults.
func (app *Application) openLocal() (*storage.Local, error) {
	path := app.cfg.LocalPath()
	opts := []storage.Option{
		storage.WithLogger(logging.Component(app.logger, "storage")),
		storage.WithWatchDelay(app.cfg.Storage.WatchDelay.Std()),
	}
	local, err := storage.OpenLocal(path, opts...)
	if !errors.Is(err, storage.ErrCorrupt) {
		return local, err
	}

	aside := path + ".corrupt"
	app.logger.Warn().Err(err).Str("moved_to", aside).Msg("discarding corrupt client storage")
	if err := os.Rename(path, aside); err != nil {
		return nil, err
	}
	return storage.OpenLocal(path, opts...)
}
