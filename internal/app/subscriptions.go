package app

import (
	"context"
	"time"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/theme"
)

// Keymap conditions kept in sync with application state.
const (
	condDrawerOpen = "drawerOpen"
	condLoggedIn   = "loggedIn"
)

// subscribe registers the application's own emitter handlers.
func (app *Application) subscribe() error {
	app.subs = event.NewSubscriber(app.emitter)

	for _, sev := range event.Severities {
		sev := sev
		if _, err := event.SubscribePayload(app.subs, sev.Topic(), func(_ context.Context, n event.Notification) error {
			app.addNote(sev, n.Message)
			return nil
		}); err != nil {
			return err
		}
	}

	if _, err := app.subs.OnFunc(event.TopicDrawerOpened, func(context.Context, any) error {
		app.setDrawerState(true)
		return nil
	}); err != nil {
		return err
	}
	if _, err := app.subs.OnFunc(event.TopicDrawerClosed, func(context.Context, any) error {
		app.setDrawerState(false)
		return nil
	}); err != nil {
		return err
	}

	if _, err := app.subs.OnFunc(event.TopicLogout, app.handleLogout); err != nil {
		return err
	}
	_, err := app.subs.OnFunc(event.TopicLoggedOut, func(context.Context, any) error {
		app.when.Set(condLoggedIn, false)
		app.requestRedraw()
		return nil
	})
	return err
}

func (app *Application) addNote(sev event.Severity, msg string) {
	app.mu.Lock()
	app.notes = append(app.notes, Note{Severity: sev, Message: msg, At: time.Now()})
	if len(app.notes) > MaxNotes {
		app.notes = append(app.notes[:0], app.notes[len(app.notes)-MaxNotes:]...)
	}
	app.mu.Unlock()
	app.requestRedraw()
}

// ClearNotes drops the notification history.
func (app *Application) ClearNotes() {
	app.mu.Lock()
	app.notes = nil
	app.mu.Unlock()
	app.requestRedraw()
}

func (app *Application) setDrawerState(open bool) {
	app.mu.Lock()
	app.drawerOpen = open
	app.mu.Unlock()
	app.when.Set(condDrawerOpen, open)
	app.requestRedraw()
}

// handleLogout clears the stored token and announces loggedOut.
func (app *Application) handleLogout(ctx context.Context, _ any) error {
	if err := app.local.Remove(api.TokenKey); err != nil {
		return err
	}
	app.logger.Info().Msg("logged out")
	return app.emitter.Emit(ctx, event.TopicLoggedOut, nil)
}

// externalChange reacts to storage writes made by another process.
func (app *Application) externalChange(ctx context.Context) func(key, value string, ok bool) {
	forwardTheme := theme.ExternalChange(ctx, app.emitter)
	return func(key, value string, ok bool) {
		app.logger.Debug().Str("key", key).Bool("present", ok).Msg("external storage change")
		switch key {
		case theme.StorageKey:
			forwardTheme(key, value, ok)
		case api.TokenKey:
			app.when.Set(condLoggedIn, app.LoggedIn())
			if !ok {
				_ = app.emitter.Emit(ctx, event.TopicLoggedOut, nil)
			}
			app.requestRedraw()
		}
	}
}
