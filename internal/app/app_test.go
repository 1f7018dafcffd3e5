package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/config"
	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/format"
	"github.com/dassana-io/web-utils/internal/input"
	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/keymap"
	"github.com/dassana-io/web-utils/internal/theme"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.UI.OS = "windows"
	cfg.API.MaxAttempts = 1
	cfg.Storage.WatchDelay = config.Duration(10 * time.Millisecond)
	return &cfg
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testConfig(t)
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func press(w *input.Window, keys ...string) {
	for _, k := range keys {
		w.DispatchKey(key.Down(k))
	}
	for i := len(keys) - 1; i >= 0; i-- {
		w.DispatchKey(key.Up(keys[i]))
	}
}

func TestNewDefaults(t *testing.T) {
	app := newTestApp(t, Options{})

	if app.Theme() != theme.Dark {
		t.Errorf("Theme() = %s, want dark", app.Theme())
	}
	if app.LoggedIn() {
		t.Error("LoggedIn() = true without a token")
	}
	if app.DrawerOpen() {
		t.Error("DrawerOpen() = true at start")
	}
	if len(app.Keymap().Bindings) != len(keymap.Default().Bindings) {
		t.Errorf("keymap has %d bindings", len(app.Keymap().Bindings))
	}
	if app.Client().RequestID() == "" {
		t.Error("client has no request id")
	}
}

func TestConfiguredThemeSeedsStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.UI.Theme = "light"
	app := newTestApp(t, Options{Config: cfg})

	if app.Theme() != theme.Light {
		t.Errorf("Theme() = %s, want light", app.Theme())
	}
	if v, _ := app.Storage().Get(theme.StorageKey); v != "light" {
		t.Errorf("stored theme = %q, want light", v)
	}
}

func TestThemeToggleShortcut(t *testing.T) {
	app := newTestApp(t, Options{})
	var updates []theme.Type
	if _, err := event.OnPayload(app.Emitter(), event.TopicThemeUpdated, func(_ context.Context, ty theme.Type) error {
		updates = append(updates, ty)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	press(app.Window(), key.Control, "t")

	if app.Theme() != theme.Light {
		t.Errorf("Theme() = %s after toggle, want light", app.Theme())
	}
	if v, _ := app.Storage().Get(theme.StorageKey); v != "light" {
		t.Errorf("stored theme = %q, want light", v)
	}
	if len(updates) != 1 || updates[0] != theme.Light {
		t.Errorf("themeUpdated emits = %v", updates)
	}
}

func TestNotifyShortcut(t *testing.T) {
	app := newTestApp(t, Options{})
	press(app.Window(), "i")

	notes := app.Notes()
	if len(notes) != 1 || notes[0].Severity != event.SeverityInfo || notes[0].Message != "Hello from the keyboard" {
		t.Errorf("Notes() = %+v", notes)
	}

	app.ClearNotes()
	if len(app.Notes()) != 0 {
		t.Error("ClearNotes() left notes")
	}
}

func TestNotesAreBounded(t *testing.T) {
	app := newTestApp(t, Options{})
	for i := 0; i < MaxNotes+5; i++ {
		if err := app.Emitter().EmitNotification(context.Background(), event.SeverityWarning, "w"); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(app.Notes()); n != MaxNotes {
		t.Errorf("len(Notes()) = %d, want %d", n, MaxNotes)
	}
}

func TestDrawerToggleAndDismiss(t *testing.T) {
	app := newTestApp(t, Options{})
	w := app.Window()

	// Escape only dismisses while the drawer is open.
	press(w, key.Escape)
	if app.DrawerOpen() {
		t.Fatal("drawer opened by Escape")
	}

	press(w, key.Control, "d")
	if !app.DrawerOpen() {
		t.Fatal("Control+d did not open the drawer")
	}
	press(w, key.Escape)
	if app.DrawerOpen() {
		t.Error("Escape did not close the drawer")
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, Options{})
	var loggedOut int
	if _, err := app.Emitter().OnFunc(event.TopicLoggedOut, func(context.Context, any) error {
		loggedOut++
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	// Logout is bound only while logged in.
	press(app.Window(), key.Control, "l")
	if loggedOut != 0 {
		t.Fatal("logout fired while logged out")
	}

	if err := app.Login("secret"); err != nil {
		t.Fatal(err)
	}
	if !app.LoggedIn() {
		t.Fatal("LoggedIn() = false after Login")
	}

	press(app.Window(), key.Control, "l")
	if app.LoggedIn() {
		t.Error("LoggedIn() = true after logout")
	}
	if _, ok := app.Storage().Get(api.TokenKey); ok {
		t.Error("token still stored after logout")
	}
	if loggedOut != 1 {
		t.Errorf("loggedOut emits = %d, want 1", loggedOut)
	}
}

func TestScriptBinding(t *testing.T) {
	km := keymap.NewKeymap("test").AddBinding(keymap.Binding{
		Keys:   "s",
		Action: keymap.ActionScript,
		Script: `notify("success", "theme is " .. theme())`,
	})
	app := newTestApp(t, Options{Keymap: km})

	press(app.Window(), "s")
	notes := app.Notes()
	if len(notes) != 1 || notes[0].Message != "theme is dark" {
		t.Errorf("Notes() = %+v", notes)
	}
}

func TestBadNotifyArgsFailNew(t *testing.T) {
	km := keymap.NewKeymap("test").AddBinding(keymap.Binding{
		Keys:   "x",
		Action: keymap.ActionNotify,
		Args:   map[string]any{"severity": "loud", "message": "hi"},
	})
	_, err := New(Options{Config: testConfig(t), Keymap: km})
	var ierr *InitError
	if !errors.As(err, &ierr) || !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("New() = %v, want InitError wrapping ErrInvalidArgs", err)
	}
}

func TestExternalChange(t *testing.T) {
	app := newTestApp(t, Options{})
	change := app.externalChange(context.Background())

	change(theme.StorageKey, "light", true)
	if app.Theme() != theme.Light {
		t.Errorf("Theme() = %s, want light", app.Theme())
	}
	change(theme.StorageKey, "", false)
	if app.Theme() != theme.Dark {
		t.Errorf("Theme() = %s after removal, want dark", app.Theme())
	}
	change("unrelated", "x", true)
}

func TestView(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Window().DispatchResize(input.Size{Width: 200 * CellWidth, Height: 40 * CellHeight})
	if err := app.Emitter().EmitNotification(context.Background(), event.SeverityError, "disk full"); err != nil {
		t.Fatal(err)
	}
	if err := app.SetDrawer(true); err != nil {
		t.Fatal(err)
	}

	lines := app.View(time.Now(), 40)
	if len(lines) != 40 {
		t.Fatalf("len(View()) = %d, want 40", len(lines))
	}

	var text []string
	for _, l := range lines {
		text = append(text, l.Text)
	}
	all := strings.Join(text, "\n")
	for _, want := range []string{"dark theme", "large", "1 notification", "[error] disk full", "Shortcuts", "Toggle theme", "Ctrl + D shortcuts"} {
		if !strings.Contains(all, want) {
			t.Errorf("view missing %q:\n%s", want, all)
		}
	}
	if lines[len(lines)-1].Role != RoleMuted {
		t.Error("footer is not muted")
	}
}

func TestViewMobileDrawerHidesNotes(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Window().DispatchResize(input.Size{Width: 300, Height: 600})
	if err := app.Emitter().EmitNotification(context.Background(), event.SeverityError, "disk full"); err != nil {
		t.Fatal(err)
	}
	if err := app.SetDrawer(true); err != nil {
		t.Fatal(err)
	}

	header := format.Pluralize("notification", 1, true)
	for _, l := range app.View(time.Now(), 30) {
		if l.Text == header || l.Role == Role(event.SeverityError) {
			t.Errorf("mobile drawer view shows notifications: %q", l.Text)
		}
	}
}

func TestNewWithCorruptStorage(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.LocalPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{Config: cfg})
	if app.Theme() != theme.Default {
		t.Errorf("Theme() = %s, want %s", app.Theme(), theme.Default)
	}
	if _, err := os.Stat(cfg.LocalPath() + ".corrupt"); err != nil {
		t.Errorf("corrupt store not moved aside: %v", err)
	}
	if err := app.SetTheme(theme.Light); err != nil {
		t.Fatalf("SetTheme() on recovered storage: %v", err)
	}
	if v, _ := app.Storage().Get(theme.StorageKey); v != "light" {
		t.Errorf("stored theme = %q, want light", v)
	}
}

func TestFetchWidget(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"key":"server.down","msg":"Service unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"count":3}`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.API.BaseURL = srv.URL
	app := newTestApp(t, Options{Config: cfg})

	data, err := app.FetchWidget(context.Background(), "alerts", "/widgets/alerts")
	if err != nil {
		t.Fatalf("FetchWidget() failed: %v", err)
	}
	if string(data) != `{"count":3}` {
		t.Errorf("FetchWidget() = %s", data)
	}

	fail.Store(true)
	data, err = app.FetchWidget(context.Background(), "alerts", "/widgets/alerts")
	if api.StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("FetchWidget() error = %v, want 500", err)
	}
	if string(data) != `{"count":3}` {
		t.Errorf("FetchWidget() fallback = %s, want cached data", data)
	}
	notes := app.Notes()
	if len(notes) != 1 || notes[0].Severity != event.SeverityError || notes[0].Message != "Service unavailable" {
		t.Errorf("Notes() = %+v", notes)
	}

	if _, err := app.FetchWidget(context.Background(), "other", "/widgets/other"); err == nil {
		t.Error("FetchWidget() without cache succeeded on server error")
	}
}

func TestRunQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 30)

	app := newTestApp(t, Options{})
	var frames atomic.Int32
	app.OnRedraw(func() { frames.Add(1) })

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background(), screen) }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := app.Run(context.Background(), screen); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after quit", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after q")
	}
	if frames.Load() == 0 {
		t.Error("no frame was drawn")
	}
	if got := app.Viewport().Size.Width; got != 100*CellWidth {
		t.Errorf("viewport width = %d, want %d", got, 100*CellWidth)
	}
}

func TestRunAfterClose(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Close()
	app.Close()
	if err := app.Run(context.Background(), tcell.NewSimulationScreen("")); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() = %v, want ErrClosed", err)
	}
}
