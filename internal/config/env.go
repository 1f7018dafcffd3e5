package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WEBUTILS_"

// PathEnv names the config file. It selects the file rather than a
// setting, so Apply skips it.
const PathEnv = EnvPrefix + "CONFIG"

// setters maps a section.camelCase path to a function that stores a raw
// environment value in the matching field.
var setters = map[string]func(c *Config, v string) error{
	"log.level":          setString(func(c *Config) *string { return &c.Log.Level }),
	"log.file":           setString(func(c *Config) *string { return &c.Log.File }),
	"log.json":           setBool(func(c *Config) *bool { return &c.Log.JSON }),
	"paths.dataDir":      setString(func(c *Config) *string { return &c.Paths.DataDir }),
	"paths.keymap":       setString(func(c *Config) *string { return &c.Paths.Keymap }),
	"api.baseUrl":        setString(func(c *Config) *string { return &c.API.BaseURL }),
	"api.token":          setString(func(c *Config) *string { return &c.API.Token }),
	"api.timeout":        setDuration(func(c *Config) *Duration { return &c.API.Timeout }),
	"api.maxAttempts":    setInt(func(c *Config) *int { return &c.API.MaxAttempts }),
	"storage.watchDelay": setDuration(func(c *Config) *Duration { return &c.Storage.WatchDelay }),
	"cache.ttl":          setDuration(func(c *Config) *Duration { return &c.Cache.TTL }),
	"script.timeout":     setDuration(func(c *Config) *Duration { return &c.Script.Timeout }),
	"ui.theme":           setString(func(c *Config) *string { return &c.UI.Theme }),
	"ui.os":              setString(func(c *Config) *string { return &c.UI.OS }),
	"ui.evdev":           setBool(func(c *Config) *bool { return &c.UI.Evdev }),
}

// EnvLoader applies environment variables to a Config.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "WEBUTILS_")
	mapping map[string]string // Env var -> config path
	lookup  func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.Environ,
	}
}

// defaultEnvMapping holds short aliases that do not follow the
// SECTION_SETTING convention.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "log.level",
		prefix + "THEME":     "ui.theme",
		prefix + "DATA_DIR":  "paths.dataDir",
		prefix + "TOKEN":     "api.token",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Apply writes every recognized variable into cfg. Unknown prefixed
// variables are reported as ErrUnknownSetting. Empty values are applied.
func (l *EnvLoader) Apply(cfg *Config) error {
	vars := make(map[string]string)
	for _, kv := range l.lookup() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || name == PathEnv {
			continue
		}
		vars[name] = value
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		set, ok := setters[path]
		if !ok {
			return fmt.Errorf("%s: %w: %s", name, ErrUnknownSetting, path)
		}
		if err := set(cfg, vars[name]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// envToPath converts WEBUTILS_API_BASE_URL to api.baseUrl.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")

	// First part is the section, the rest form a camelCase setting name.
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}
	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0", "":
			*field(c) = false
		default:
			return fmt.Errorf("%w: bool %q", ErrInvalidValue, v)
		}
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: int %q", ErrInvalidValue, v)
		}
		*field(c) = n
		return nil
	}
}

func setDuration(field func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		return field(c).UnmarshalText([]byte(v))
	}
}
