package api

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration

	// BackoffMultiplier multiplies the delay after each attempt.
	BackoffMultiplier float64

	// Retryable decides which errors trigger another attempt.
	// If nil, all errors are retried.
	Retryable func(error) bool
}

// DefaultRetryConfig makes three retries with exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       4,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// NoRetry makes a single attempt.
func NoRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. If MaxAttempts is <= 0, it defaults to 1 attempt.
// The last error is returned unwrapped so callers can inspect it.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(attempt int) (T, error)) (T, error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var zero T
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}

		if attempt == maxAttempts {
			if maxAttempts > 1 {
				return zero, fmt.Errorf("after %d attempts: %w", maxAttempts, err)
			}
			return zero, err
		}
		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, errors.Join(ctx.Err(), err)
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffMultiplier)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
