package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// MaxLineSize is the longest NDJSON line Stream accepts.
const MaxLineSize = 4 << 20

// Stream GETs path and decodes the newline-delimited JSON response one
// line at a time, calling fn for each value. Blank lines are skipped.
// An error from fn stops the stream and is returned.
func Stream[T any](ctx context.Context, c *Client, path string, fn func(T) error) error {
	if fn == nil {
		return ErrNilCallback
	}
	return c.StreamLines(ctx, path, func(line gjson.Result) error {
		var v T
		if err := json.Unmarshal([]byte(line.Raw), &v); err != nil {
			return fmt.Errorf("decode line: %w", err)
		}
		return fn(v)
	})
}

// StreamLines is Stream without decoding: fn gets each line parsed with gjson.
func (c *Client) StreamLines(ctx context.Context, path string, fn func(gjson.Result) error) error {
	if fn == nil {
		return ErrNilCallback
	}

	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64<<10), MaxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return fmt.Errorf("line %d: invalid json", n)
		}
		if err := fn(gjson.ParseBytes(line)); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}
