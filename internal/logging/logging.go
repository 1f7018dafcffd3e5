// Package logging builds the zerolog logger shared by webutils components.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// TimeFormat is used by console output.
const TimeFormat = "2006-01-02 15:04:05"

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = errors.New("unknown log level")

// Options selects where and how much to log.
type Options struct {
	// Level is debug, info, warn, error or disabled. Empty means info.
	Level string
	// File appends logs to a file. Empty writes to Out.
	File string
	// JSON writes raw zerolog JSON lines.
	JSON bool
	// Out is used when File is empty. Nil means stderr.
	Out io.Writer
}

// ParseLevel parses a level name. Both "warn" and "warning" are accepted.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "off", "none":
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return lvl, nil
}

// New builds a logger. The returned closer releases the log file and is
// never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	toFile := opts.File != ""
	if toFile {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out, closer = f, f
	}

	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: TimeFormat,
			NoColor:    toFile || !isTerminal(out),
		}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return logger, closer, nil
}

// Component returns l tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
