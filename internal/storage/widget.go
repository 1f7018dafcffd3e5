package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const widgetExt = ".json"

// WidgetCache stores one JSON value per widget id. Values live in
// <dir>/<id>.json and are kept in memory for ttl after last load.
type WidgetCache struct {
	dir    string
	mem    *cache.Cache
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewWidgetCache creates a cache rooted at dir. A non-positive ttl keeps
// loaded values in memory until deleted.
func NewWidgetCache(dir string, ttl time.Duration, opts ...Option) (*WidgetCache, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating widget dir: %w", err)
	}

	exp, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		exp, cleanup = ttl, 2*ttl
	}

	return &WidgetCache{
		dir:    dir,
		mem:    cache.New(exp, cleanup),
		logger: o.logger.With().Str("component", "widgets").Logger(),
	}, nil
}

func (c *WidgetCache) file(id string) (string, error) {
	if id == "" {
		return "", ErrEmptyKey
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return filepath.Join(c.dir, id+widgetExt), nil
}

// SetWidget stores v as JSON under id.
func (c *WidgetCache) SetWidget(id string, v any) error {
	path, err := c.file(id)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding widget %q: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("saving widget %q: %w", id, err)
	}
	c.mem.SetDefault(id, data)
	return nil
}

// Raw returns the stored JSON for id. ok is false when nothing is stored.
func (c *WidgetCache) Raw(id string) (data []byte, ok bool, err error) {
	path, err := c.file(id)
	if err != nil {
		return nil, false, err
	}

	if v, found := c.mem.Get(id); found {
		return v.([]byte), true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading widget %q: %w", id, err)
	}
	c.mem.SetDefault(id, data)
	c.logger.Debug().Str("widget", id).Msg("loaded from disk")
	return data, true, nil
}

// GetWidget decodes the value stored under id into a T.
func GetWidget[T any](c *WidgetCache, id string) (T, bool, error) {
	var v T
	data, ok, err := c.Raw(id)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("decoding widget %q: %w", id, err)
	}
	return v, true, nil
}

// Delete removes id. Deleting a missing id is a no-op.
func (c *WidgetCache) Delete(id string) error {
	path, err := c.file(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem.Delete(id)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting widget %q: %w", id, err)
	}
	return nil
}

// Keys lists the stored widget ids in sorted order.
func (c *WidgetCache) Keys() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("listing widgets: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != widgetExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, widgetExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Clear removes every stored widget.
func (c *WidgetCache) Clear() error {
	ids, err := c.Keys()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := c.Delete(id); err != nil {
			return err
		}
	}
	c.mem.Flush()
	return nil
}

// Cached returns how many widgets are held in memory.
func (c *WidgetCache) Cached() int {
	return c.mem.ItemCount()
}
