package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidBaseURL is returned by New for a base URL without scheme or host.
	ErrInvalidBaseURL = errors.New("api: invalid base url")

	// ErrNilCallback is returned by Stream when no line callback is given.
	ErrNilCallback = errors.New("api: nil stream callback")
)

// ResponseError is a response with a non-2xx status. Key and Msg come from
// the service's {"key": ..., "msg": ...} error body when present.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Key        string
	Msg        string
	Body       []byte
}

func newResponseError(method, url string, status int, body []byte) *ResponseError {
	re := &ResponseError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}
	if gjson.ValidBytes(body) {
		re.Key = gjson.GetBytes(body, "key").String()
		re.Msg = gjson.GetBytes(body, "msg").String()
	}
	return re
}

// Error implements error.
func (e *ResponseError) Error() string {
	detail := e.Message()
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.URL, e.StatusCode, detail)
}

// Message returns Msg, or Key when Msg is empty.
func (e *ResponseError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Key
}

// Retryable reports whether the status is worth retrying.
func (e *ResponseError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// StatusCode returns the status of a *ResponseError in err's chain, or 0.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
