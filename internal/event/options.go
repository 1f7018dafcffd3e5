package event

import "github.com/rs/zerolog"

// Option configures an Emitter.
type Option func(*config)

type config struct {
	logger       zerolog.Logger
	panicHandler PanicHandler
}

func defaultConfig() config {
	return config{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report handler failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithPanicHandler sets a function told about every recovered handler panic.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) {
		if h != nil {
			c.panicHandler = h
		}
	}
}
