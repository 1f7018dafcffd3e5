package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dassana-io/web-utils/internal/timing"
	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is told about a key changed by another writer. ok is false
// when the key was removed.
type ChangeFunc func(key, value string, ok bool)

// Watch starts watching the store file for writes made outside this Local.
// The watch is installed before Watch returns and runs until ctx is done.
// fn is called once per changed key, in key order, from the watcher's
// goroutine. Writes made through this Local never reach fn.
func (l *Local) Watch(ctx context.Context, fn ChangeFunc) error {
	if fn == nil {
		return ErrNilFunc
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory: atomic replacement swaps the inode, which
	// drops a watch placed on the file itself.
	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	reload := timing.NewDebouncer(l.opts.watchDelay, func(struct{}) {
		l.reload(fn)
	})

	go func() {
		defer w.Close()
		defer reload.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != l.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				reload.Push(struct{}{})

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn().Err(err).Msg("watch error")
			}
		}
	}()

	return nil
}

// reload reads the file and reports keys whose value differs from memory.
func (l *Local) reload(fn ChangeFunc) {
	// Read under the lock so a concurrent Set cannot be rolled back.
	l.mu.Lock()
	doc, err := readDoc(l.path)
	if err != nil {
		l.mu.Unlock()
		// A non-atomic writer may be mid-write; the next event retries.
		l.logger.Debug().Err(err).Msg("skipping unreadable store")
		return
	}
	before := snapshot(l.doc)
	after := snapshot(doc)
	l.doc = doc
	l.mu.Unlock()

	keys := make([]string, 0)
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		l.logger.Debug().Strs("keys", keys).Msg("external store change")
	}
	for _, k := range keys {
		v, ok := after[k]
		fn(k, v, ok)
	}
}
