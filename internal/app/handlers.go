package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/input/keymap"
	"github.com/dassana-io/web-utils/internal/storage"
	"github.com/dassana-io/web-utils/internal/theme"
)

// resolve maps the built-in keymap actions to callbacks. Script bindings
// are handled by the script engine before reaching here.
func (app *Application) resolve(b keymap.Binding) (func(), error) {
	switch b.Action {
	case keymap.ActionQuit:
		return app.Quit, nil
	case keymap.ActionDismiss:
		return func() { app.report(app.SetDrawer(false)) }, nil
	case keymap.ActionThemeToggle:
		return func() { app.report(app.ToggleTheme()) }, nil
	case keymap.ActionDrawerToggle:
		return func() { app.report(app.SetDrawer(!app.DrawerOpen())) }, nil
	case keymap.ActionLogout:
		return func() { app.report(app.Logout()) }, nil
	case keymap.ActionNotify:
		sev, msg, err := notifyArgs(b.Args)
		if err != nil {
			return nil, err
		}
		return func() { app.report(app.emitter.EmitNotification(app.ctx, sev, msg)) }, nil
	}
	return nil, fmt.Errorf("%w: %s", keymap.ErrUnknownAction, b.Action)
}

func notifyArgs(args map[string]any) (event.Severity, string, error) {
	sev := event.SeverityInfo
	if v, ok := args["severity"]; ok {
		s, _ := v.(string)
		parsed, err := event.ParseSeverity(s)
		if err != nil {
			return "", "", fmt.Errorf("%w: severity %v", ErrInvalidArgs, v)
		}
		sev = parsed
	}
	msg, ok := args["message"].(string)
	if !ok || msg == "" {
		return "", "", fmt.Errorf("%w: message is required", ErrInvalidArgs)
	}
	return sev, msg, nil
}

// report logs an action failure.
func (app *Application) report(err error) {
	if err != nil {
		app.logger.Error().Err(err).Msg("action failed")
	}
}

// ToggleTheme switches between the dark and light themes.
func (app *Application) ToggleTheme() error {
	return app.SetTheme(app.themes.Current().Toggle())
}

// SetTheme persists t and announces it.
func (app *Application) SetTheme(t theme.Type) error {
	return theme.Set(app.ctx, app.emitter, app.local, t)
}

// SetDrawer opens or closes the shortcut drawer. Closing a closed drawer
// does nothing.
func (app *Application) SetDrawer(open bool) error {
	if app.DrawerOpen() == open {
		return nil
	}
	topic := event.TopicDrawerClosed
	if open {
		topic = event.TopicDrawerOpened
	}
	return app.emitter.Emit(app.ctx, topic, nil)
}

// Logout announces a logout. The logout handler clears the token.
func (app *Application) Logout() error {
	return app.emitter.Emit(app.ctx, event.TopicLogout, nil)
}

// Login stores a bearer token for later requests.
func (app *Application) Login(token string) error {
	if err := app.local.Set(api.TokenKey, token); err != nil {
		return err
	}
	app.when.Set(condLoggedIn, true)
	app.requestRedraw()
	return nil
}

// FetchWidget loads widget data from path and caches it under id. When the
// request fails the error is announced as a notification and cached data,
// if any, is returned with the error.
func (app *Application) FetchWidget(ctx context.Context, id, path string) (json.RawMessage, error) {
	ctx = event.NewContext(ctx, app.emitter)

	data, err := app.client.Raw(ctx, http.MethodGet, path, nil)
	if err == nil {
		if !json.Valid(data) {
			return nil, fmt.Errorf("widget %s: response is not JSON", id)
		}
		if err := app.widgets.SetWidget(id, json.RawMessage(data)); err != nil {
			return nil, err
		}
		return data, nil
	}

	if nerr := api.HandleError(ctx, err, app.emitter); nerr != nil {
		app.logger.Warn().Err(nerr).Msg("notification handlers failed")
	}
	cached, ok, cerr := storage.GetWidget[json.RawMessage](app.widgets, id)
	if cerr != nil || !ok {
		return nil, err
	}
	app.logger.Info().Str("widget", id).Msg("serving cached widget data")
	return cached, err
}
