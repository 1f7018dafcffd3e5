package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dassana-io/web-utils/internal/api"
	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/script"
	"github.com/dassana-io/web-utils/internal/storage"
	"github.com/dassana-io/web-utils/internal/theme"
)

// AppName names the config and data directories.
const AppName = "webutils"

// Config holds every webutils setting.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Paths   PathsConfig   `toml:"paths"`
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Script  ScriptConfig  `toml:"script"`
	UI      UIConfig      `toml:"ui"`
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	// Level is one of debug, info, warn, error or disabled.
	Level string `toml:"level"`
	// File receives log output. Empty writes to stderr.
	File string `toml:"file"`
	// JSON writes raw JSON lines instead of console output.
	JSON bool `toml:"json"`
}

// PathsConfig locates persisted data.
type PathsConfig struct {
	// DataDir holds local.json and the widgets directory.
	DataDir string `toml:"dataDir"`
	// Keymap is an optional YAML keymap merged over the defaults.
	Keymap string `toml:"keymap"`
}

// APIConfig configures the HTTP client.
type APIConfig struct {
	BaseURL     string   `toml:"baseUrl"`
	Token       string   `toml:"token"`
	Timeout     Duration `toml:"timeout"`
	MaxAttempts int      `toml:"maxAttempts"`
}

// StorageConfig configures the local key/value store.
type StorageConfig struct {
	// WatchDelay coalesces bursts of external writes.
	WatchDelay Duration `toml:"watchDelay"`
}

// CacheConfig configures the widget cache.
type CacheConfig struct {
	// TTL bounds how long widget data stays in memory. Zero keeps it forever.
	TTL Duration `toml:"ttl"`
}

// ScriptConfig configures Lua actions.
type ScriptConfig struct {
	Timeout Duration `toml:"timeout"`
}

// UIConfig configures the interactive demo.
type UIConfig struct {
	// Theme is used when storage holds no theme.
	Theme string `toml:"theme"`
	// OS selects key labels: mac, windows or linux. Empty detects it.
	OS string `toml:"os"`
	// Evdev reads Linux input devices in addition to the terminal.
	Evdev bool `toml:"evdev"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Paths: PathsConfig{
			DataDir: DefaultDataDir(),
		},
		API: APIConfig{
			BaseURL:     "http://localhost:8080",
			Timeout:     Duration(api.DefaultTimeout),
			MaxAttempts: api.DefaultRetryConfig().MaxAttempts,
		},
		Storage: StorageConfig{WatchDelay: Duration(storage.DefaultWatchDelay)},
		Cache:   CacheConfig{TTL: Duration(10 * time.Minute)},
		Script:  ScriptConfig{Timeout: Duration(script.DefaultTimeout)},
		UI:      UIConfig{Theme: theme.Default.String()},
	}
}

// Validate checks values that decode but cannot be used.
func (c Config) Validate() error {
	if _, err := theme.Parse(c.UI.Theme); err != nil {
		return fmt.Errorf("ui.theme: %w", err)
	}
	if c.UI.OS != "" {
		if _, err := key.ParseOS(c.UI.OS); err != nil {
			return fmt.Errorf("ui.os: %w", err)
		}
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api.maxAttempts: %w: must be at least 1", ErrInvalidValue)
	}
	if c.API.Timeout < 0 || c.Cache.TTL < 0 || c.Storage.WatchDelay < 0 || c.Script.Timeout < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidValue)
	}
	return nil
}

// LocalPath returns the key/value store file.
func (c Config) LocalPath() string {
	return filepath.Join(c.Paths.DataDir, "local.json")
}

// WidgetDir returns the widget cache directory.
func (c Config) WidgetDir() string {
	return filepath.Join(c.Paths.DataDir, "widgets")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/webutils or ~/.config/webutils.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// DefaultConfigPath returns config.toml inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// DefaultDataDir returns $XDG_DATA_HOME/webutils or ~/.local/share/webutils.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", AppName)
}
