package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var indentOptions = &pretty.Options{Width: 0, Indent: "  "}

// Pretty renders v as JSON indented by two spaces, one element per line.
func Pretty(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return string(bytes.TrimSuffix(pretty.PrettyOptions(data, indentOptions), []byte("\n"))), nil
}

// PrettyBytes indents raw JSON. Invalid input is returned unchanged.
func PrettyBytes(data []byte) []byte {
	if !gjson.ValidBytes(data) {
		return data
	}
	return bytes.TrimSuffix(pretty.PrettyOptions(data, indentOptions), []byte("\n"))
}

// Color indents raw JSON and adds terminal color codes.
func Color(data []byte) []byte {
	return pretty.Color(PrettyBytes(data), nil)
}

// Valid reports whether s is a JSON document.
func Valid(s string) bool {
	return gjson.Valid(s)
}

// ParseObject validates s and, when it holds a JSON object, calls fn with
// the decoded object. It reports whether s is valid JSON.
func ParseObject(s string, fn func(map[string]any)) bool {
	if !gjson.Valid(s) {
		return false
	}
	if fn != nil && gjson.Parse(s).IsObject() {
		var m map[string]any
		if err := json.Unmarshal([]byte(s), &m); err == nil {
			fn(m)
		}
	}
	return true
}
