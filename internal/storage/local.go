package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const emptyDoc = "{}"

// Local is a persisted string key/value store.
// It is safe for concurrent use.
type Local struct {
	mu     sync.RWMutex
	path   string
	doc    string
	opts   options
	logger zerolog.Logger
}

// OpenLocal opens the store at path. A missing file is an empty store; the
// file is created on the first write.
func OpenLocal(path string, opts ...Option) (*Local, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving store path: %w", err)
	}

	doc, err := readDoc(abs)
	if err != nil {
		return nil, err
	}

	return &Local{
		path:   abs,
		doc:    doc,
		opts:   o,
		logger: o.logger.With().Str("component", "storage").Str("path", abs).Logger(),
	}, nil
}

func readDoc(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyDoc, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return emptyDoc, nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return "", fmt.Errorf("%s: %w", path, ErrCorrupt)
	}
	return string(pretty.Ugly(data)), nil
}

// Path returns the absolute file path of the store.
func (l *Local) Path() string {
	return l.path
}

// Get returns the value stored under key.
func (l *Local) Get(key string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r := gjson.Get(l.doc, gjson.Escape(key))
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

// Set stores value under key and persists the store.
func (l *Local) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := sjson.Set(l.doc, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return l.commitLocked(doc)
}

// Remove deletes key. Removing a missing key is a no-op.
func (l *Local) Remove(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := gjson.Escape(key)
	if !gjson.Get(l.doc, path).Exists() {
		return nil
	}
	doc, err := sjson.Delete(l.doc, path)
	if err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return l.commitLocked(doc)
}

// Clear removes every key.
func (l *Local) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commitLocked(emptyDoc)
}

// Keys returns the stored keys in sorted order.
func (l *Local) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0)
	gjson.Parse(l.doc).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (l *Local) Len() int {
	return len(l.Keys())
}

func (l *Local) commitLocked(doc string) error {
	if err := writeFileAtomic(l.path, pretty.Pretty([]byte(doc))); err != nil {
		return fmt.Errorf("persisting store: %w", err)
	}
	l.doc = doc
	return nil
}

// snapshot returns the document as a key/value map.
func snapshot(doc string) map[string]string {
	m := make(map[string]string)
	gjson.Parse(doc).ForEach(func(k, v gjson.Result) bool {
		m[k.String()] = v.String()
		return true
	})
	return m
}
