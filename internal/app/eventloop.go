package app

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dassana-io/web-utils/internal/input/evdev"
	"github.com/dassana-io/web-utils/internal/input/terminal"
	"github.com/dassana-io/web-utils/internal/logging"
)

// Terminal cells are converted to CSS pixels for viewport breakpoints.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Run draws the demo on screen and feeds it keyboard input until ctx is
// done or a quit action fires. The screen must already be initialized.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopOnQuit := context.AfterFunc(app.ctx, cancel)
	defer stopOnQuit()

	app.setScreen(screen)
	defer app.setScreen(nil)

	if err := app.local.Watch(ctx, app.externalChange(ctx)); err != nil {
		app.logger.Warn().Err(err).Msg("storage watch unavailable")
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	if app.cfg.UI.Evdev {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := evdev.New(app.window, logging.Component(app.logger, "evdev"))
			if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Warn().Err(err).Msg("evdev input stopped")
			}
		}()
	}

	app.uptime.Start(true)
	defer app.uptime.Pause()

	src := terminal.New(screen, app.window,
		terminal.WithLogger(logging.Component(app.logger, "terminal")),
		terminal.WithCellSize(CellWidth, CellHeight),
		terminal.WithAfter(func(tcell.Event) { app.draw() }),
	)
	app.draw()
	err := src.Run(ctx)
	if errors.Is(err, context.Canceled) && app.ctx.Err() != nil {
		return nil
	}
	return err
}

// Quit stops Run. The application can not be run again after Quit.
func (app *Application) Quit() {
	app.cancel()
}

// Close releases every component. Close is idempotent.
func (app *Application) Close() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	app.cancel()

	// Shut down in reverse initialization order.
	if app.bound != nil {
		app.bound.Release()
	}
	if app.scripts != nil {
		app.scripts.Close()
	}
	if app.subs != nil {
		app.subs.Close()
	}
	if app.viewport != nil {
		app.viewport.Close()
	}
	if app.redraw != nil {
		app.redraw.Stop()
	}
	if app.uptime != nil {
		app.uptime.Reset()
	}
	if app.themes != nil {
		app.themes.Close()
	}
	if app.emitter != nil {
		app.emitter.Clear()
	}
}

// OnRedraw registers fn to run after every frame is drawn. Tests use it to
// observe rendering.
func (app *Application) OnRedraw(fn func()) {
	app.mu.Lock()
	app.onRedraw = fn
	app.mu.Unlock()
}

// requestRedraw schedules a frame. Bursts within one frame are coalesced.
func (app *Application) requestRedraw() {
	if app.redraw != nil {
		app.redraw.Push(struct{}{})
	}
}
