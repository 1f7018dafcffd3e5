package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Load resolves defaults, the TOML file at path and the process
// environment. A missing file is not an error. An empty path uses
// DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := decode(path, bytes.NewReader(data), &cfg); err != nil {
			return cfg, err
		}
	}

	if err := NewEnvLoader(EnvPrefix).Apply(&cfg); err != nil {
		return cfg, err
	}
	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.Keymap = expandPath(cfg.Paths.Keymap)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, cfg.Validate()
}

// LoadReader decodes TOML from r over the defaults. The environment is
// not consulted.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode("<reader>", r, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(source string, r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = serr.String()
		}
		return perr
	}
	return nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// expandPath expands environment variables and a leading "~/".
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if len(p) >= 2 && p[0] == '~' && (p[1] == '/' || p[1] == filepath.Separator) {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
