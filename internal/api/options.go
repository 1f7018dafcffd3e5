package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single attempt when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// TokenSource reads the bearer token from client storage.
type TokenSource interface {
	Get(key string) (string, bool)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Get implements TokenSource.
func (t StaticToken) Get(key string) (string, bool) {
	return string(t), t != ""
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource sets where the bearer token is read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithRequestID pins the request id instead of generating one.
func WithRequestID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.requestID = id
		}
	}
}

// WithRetry sets the retry policy for idempotent requests.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithLogger sets the client's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}
