package evdev

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/dassana-io/web-utils/internal/input"
)

// ErrNoKeyboards is returned when no readable keyboard device exists.
var ErrNoKeyboards = errors.New("no keyboard devices found (is the user in the 'input' group?)")

// Source reads keyboard devices and dispatches their events.
type Source struct {
	window *input.Window
	logger zerolog.Logger
}

// New creates a source for w.
func New(w *input.Window, logger zerolog.Logger) *Source {
	return &Source{window: w, logger: logger}
}

// ReadFrom decodes records from r until r fails or ctx is done. When the
// stream ends the window receives a blur, since keys held on the lost
// device will never report a release.
func (s *Source) ReadFrom(ctx context.Context, r io.Reader) error {
	dec := NewDecoder()
	buf := make([]byte, inputEventSize*16)
	defer s.window.DispatchBlur()

	// Records can straddle reads.
	var pending []byte
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			whole := len(pending) - len(pending)%inputEventSize
			for _, e := range dec.Decode(pending[:whole]) {
				s.window.DispatchKey(e)
			}
			pending = append(pending[:0], pending[whole:]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// Run opens every keyboard device and reads them until ctx is done.
func (s *Source) Run(ctx context.Context) error {
	paths, err := FindKeyboards()
	if err != nil {
		return err
	}

	var files []*os.File
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			s.logger.Debug().Err(err).Str("device", p).Msg("cannot open keyboard")
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return ErrNoKeyboards
	}

	// Closing the files unblocks the readers.
	stop := context.AfterFunc(ctx, func() {
		for _, f := range files {
			f.Close()
		}
	})
	defer stop()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)
	for _, f := range files {
		wg.Add(1)
		go func(f *os.File) {
			defer wg.Done()
			s.logger.Info().Str("device", f.Name()).Msg("reading keyboard")
			if err := s.ReadFrom(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
		}(f)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return result.ErrorOrNil()
}
