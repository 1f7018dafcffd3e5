package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// RequestIDHeader carries the client's request id.
	RequestIDHeader = "x-dassana-request-id"

	// TokenKey is the client storage key holding the bearer token.
	TokenKey = "token"

	maxErrorBody = 64 << 10
)

// Client sends JSON requests to one service.
type Client struct {
	base      *url.URL
	http      *http.Client
	tokens    TokenSource
	requestID string
	retry     RetryConfig
	headers   http.Header
	logger    zerolog.Logger
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q: %w", baseURL, ErrInvalidBaseURL)
	}

	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: DefaultTimeout},
		requestID: uuid.NewString(),
		retry:     DefaultRetryConfig(),
		headers:   make(http.Header),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "api").Str("request_id", c.requestID).Logger()
	return c, nil
}

// RequestID returns the id sent in RequestIDHeader.
func (c *Client) RequestID() string {
	return c.requestID
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL resolves path against the base URL. Absolute URLs are returned as is.
func (c *Client) URL(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	u := c.base.JoinPath(ref.Path)
	u.RawQuery = ref.RawQuery
	return u.String(), nil
}

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

// Patch sends body as JSON and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPatch, path, body, out)
}

// Delete sends DELETE path and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodDelete, path, nil, out)
}

// Raw sends a request and returns the response body.
func (c *Client) Raw(ctx context.Context, method, path string, body any) ([]byte, error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	data, err := c.Raw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Do sends a request, retrying when allowed, and returns the first 2xx
// response. The caller closes the body. Other statuses are returned as
// *ResponseError.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	target, err := c.URL(path)
	if err != nil {
		return nil, err
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	cfg := c.retry
	if !idempotent(method) {
		cfg.MaxAttempts = 1
	}
	custom := cfg.Retryable
	cfg.Retryable = func(err error) bool {
		if !retryable(err) {
			return false
		}
		return custom == nil || custom(err)
	}

	return Retry(ctx, cfg, func(attempt int) (*http.Response, error) {
		if attempt > 1 {
			c.logger.Warn().Str("method", method).Str("url", target).Int("attempt", attempt).Msg("retrying request")
		}
		return c.send(ctx, method, target, payload)
	})
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, c.requestID)
	if c.tokens != nil {
		if token, ok := c.tokens.Get(TokenKey); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	c.logger.Debug().Str("method", method).Str("url", target).Int("status", resp.StatusCode).Msg("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newResponseError(method, target, resp.StatusCode, data)
	}
	return resp, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return data, nil
}

func idempotent(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// retryable matches transport failures and 429/5xx responses.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
