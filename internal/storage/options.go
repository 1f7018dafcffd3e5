package storage

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultWatchDelay coalesces the burst of events produced by one write.
const DefaultWatchDelay = 50 * time.Millisecond

// Option configures a Local store or a WidgetCache.
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	watchDelay time.Duration
}

func defaultOptions() options {
	return options{
		logger:     zerolog.Nop(),
		watchDelay: DefaultWatchDelay,
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWatchDelay sets how long Watch waits for a file to settle.
func WithWatchDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.watchDelay = d
		}
	}
}
