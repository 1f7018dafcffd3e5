// Package jsonutil reads, updates and converts generic JSON documents.
package jsonutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidPath is returned for a JSONPath expression that cannot be parsed.
var ErrInvalidPath = errors.New("jsonutil: invalid path")

type segment struct {
	key      string
	wildcard bool
}

// parsePath splits a JSONPath expression such as $.a.b[0], a['x.y'][*]
// or a.*.c into segments. The leading "$" is optional.
func parsePath(p string) ([]segment, error) {
	orig := p
	p = strings.TrimPrefix(strings.TrimSpace(p), "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return nil, fmt.Errorf("%q: %w", orig, ErrInvalidPath)
	}

	var segs []segment
	for len(p) > 0 {
		switch {
		case p[0] == '.':
			p = p[1:]
			if p == "" || p[0] == '.' || p[0] == '[' {
				return nil, fmt.Errorf("%q: %w", orig, ErrInvalidPath)
			}

		case p[0] == '[':
			end := strings.IndexByte(p, ']')
			if end < 0 {
				return nil, fmt.Errorf("%q: unclosed bracket: %w", orig, ErrInvalidPath)
			}
			inner := strings.TrimSpace(p[1:end])
			p = p[end+1:]
			switch {
			case inner == "*":
				segs = append(segs, segment{wildcard: true})
			case len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0]:
				segs = append(segs, segment{key: inner[1 : len(inner)-1]})
			default:
				if _, err := strconv.Atoi(inner); err != nil {
					return nil, fmt.Errorf("%q: bad index %q: %w", orig, inner, ErrInvalidPath)
				}
				segs = append(segs, segment{key: inner})
			}

		default:
			end := strings.IndexAny(p, ".[")
			if end < 0 {
				end = len(p)
			}
			name := p[:end]
			p = p[end:]
			segs = append(segs, segment{key: name, wildcard: name == "*"})
		}
	}
	return segs, nil
}

// expand resolves segments against doc into the concrete gjson paths
// that exist.
func expand(doc []byte, segs []segment) []string {
	type match struct {
		path string
		val  gjson.Result
	}
	cur := []match{{val: gjson.ParseBytes(doc)}}

	join := func(prefix, comp string) string {
		if prefix == "" {
			return comp
		}
		return prefix + "." + comp
	}

	for _, s := range segs {
		var next []match
		for _, m := range cur {
			if s.wildcard {
				i := 0
				m.val.ForEach(func(k, v gjson.Result) bool {
					comp := strconv.Itoa(i)
					if m.val.IsObject() {
						comp = gjson.Escape(k.String())
					}
					next = append(next, match{path: join(m.path, comp), val: v})
					i++
					return true
				})
				continue
			}
			if !m.val.IsObject() && !m.val.IsArray() {
				continue
			}
			comp := gjson.Escape(s.key)
			if v := m.val.Get(comp); v.Exists() {
				next = append(next, match{path: join(m.path, comp), val: v})
			}
		}
		cur = next
	}

	paths := make([]string, len(cur))
	for i, m := range cur {
		paths[i] = m.path
	}
	return paths
}

// SetPath replaces the value at every location matched by path with val
// and returns the new document and the number of replacements. Paths
// that match nothing leave the document unchanged.
func SetPath(doc []byte, path string, val any) ([]byte, int, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, 0, err
	}

	matches := expand(doc, segs)
	out := doc
	for _, p := range matches {
		if out, err = sjson.SetBytes(out, p, val); err != nil {
			return nil, 0, fmt.Errorf("setting %s: %w", p, err)
		}
	}
	return out, len(matches), nil
}

// GetPath returns the values matched by path in document order.
func GetPath(doc []byte, path string) ([]gjson.Result, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	matches := expand(doc, segs)
	out := make([]gjson.Result, len(matches))
	for i, p := range matches {
		out[i] = gjson.GetBytes(doc, p)
	}
	return out, nil
}
