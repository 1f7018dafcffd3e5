package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader loads keymaps from YAML files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
	logger      zerolog.Logger
}

// NewLoader creates a new keymap loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load reads a single keymap file.
func Load(path string) (*Keymap, error) {
	return NewLoader(zerolog.Nop()).LoadFile(path)
}

// LoadFile loads a keymap from a YAML file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	km.Source = path
	if km.Name == "" {
		km.Name = trimExt(filepath.Base(path))
	}
	return km, nil
}

// LoadReader loads and validates a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader) (*Keymap, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var km Keymap
	if err := dec.Decode(&km); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKeymap(""), nil
		}
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return &km, nil
}

// LoadAll loads every *.yaml and *.yml file in the search paths, in
// path order. Files that fail to load are logged and skipped.
func (l *Loader) LoadAll() []*Keymap {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		var matches []string
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			m, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)

		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				l.logger.Warn().Err(err).Str("path", path).Msg("skipping keymap")
				continue
			}
			keymaps = append(keymaps, km)
		}
	}

	return keymaps
}

// LoadMerged loads every keymap in the search paths on top of base.
func (l *Loader) LoadMerged(base *Keymap) *Keymap {
	merged := base
	for _, km := range l.LoadAll() {
		merged = merged.Merge(km)
	}
	return merged
}

// Marshal encodes the keymap as YAML.
func (k *Keymap) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(k); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile saves a keymap to a YAML file.
func (k *Keymap) SaveFile(path string) error {
	data, err := k.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling keymap: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}

	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
