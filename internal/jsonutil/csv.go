package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the input is not a JSON document.
var ErrInvalidJSON = errors.New("jsonutil: invalid json")

// CSVField selects a column. Value is a gjson path into each record;
// Label defaults to Value.
type CSVField struct {
	Label string
	Value string
}

// CSVOptions configures ToCSV.
type CSVOptions struct {
	// Fields selects and orders the columns. When empty, the columns are
	// the top-level keys of all records in first-seen order.
	Fields []CSVField

	// Delimiter separates columns. Default is ",".
	Delimiter string

	// EOL separates rows. Default is "\n".
	EOL string

	// NoHeader omits the header row.
	NoHeader bool
}

// ToCSV converts an object or an array of objects to CSV. Strings and
// headers are always quoted; numbers and booleans are not. Nested values
// are written as quoted JSON. Missing and null values are empty.
func ToCSV(v any, opts CSVOptions) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return ToCSVBytes(data, opts)
}

// ToCSVBytes is ToCSV for raw JSON.
func ToCSVBytes(data []byte, opts CSVOptions) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", ErrInvalidJSON
	}
	if opts.Delimiter == "" {
		opts.Delimiter = ","
	}
	if opts.EOL == "" {
		opts.EOL = "\n"
	}

	root := gjson.ParseBytes(data)
	var records []gjson.Result
	switch {
	case root.IsArray():
		records = root.Array()
	case root.IsObject():
		records = []gjson.Result{root}
	default:
		return "", fmt.Errorf("jsonutil: csv input must be an object or array, got %s", root.Type)
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = inferFields(records)
	}

	var rows []string
	if !opts.NoHeader {
		cells := make([]string, len(fields))
		for i, f := range fields {
			label := f.Label
			if label == "" {
				label = f.Value
			}
			cells[i] = quote(label)
		}
		rows = append(rows, strings.Join(cells, opts.Delimiter))
	}

	for _, rec := range records {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = cell(rec.Get(f.Value))
		}
		rows = append(rows, strings.Join(cells, opts.Delimiter))
	}
	return strings.Join(rows, opts.EOL), nil
}

func inferFields(records []gjson.Result) []CSVField {
	seen := make(map[string]bool)
	var fields []CSVField
	for _, rec := range records {
		rec.ForEach(func(k, _ gjson.Result) bool {
			name := k.String()
			if !seen[name] {
				seen[name] = true
				fields = append(fields, CSVField{Label: name, Value: gjson.Escape(name)})
			}
			return true
		})
	}
	return fields
}

func cell(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return quote(r.String())
	case gjson.JSON:
		return quote(r.Raw)
	case gjson.Null:
		return ""
	}
	return r.Raw
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
