// Package urlparams parses and builds query strings and browser-style URLs.
package urlparams

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Params maps each query key to its values in the order they appeared.
type Params map[string][]string

// Parse reads a query string. A leading "?" or "#" is ignored, "+" decodes
// to a space and a key without "=" gets an empty value. Pairs that fail to
// decode are kept verbatim.
func Parse(s string) Params {
	s = strings.TrimLeft(strings.TrimSpace(s), "?#")
	p := make(Params)
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = decode(k)
		if k == "" {
			continue
		}
		p[k] = append(p[k], decode(v))
	}
	return p
}

func decode(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}

// FromValues copies url.Values into Params.
func FromValues(v url.Values) Params {
	p := make(Params, len(v))
	for k, vs := range v {
		p[k] = append([]string(nil), vs...)
	}
	return p
}

// Get returns the first value of key.
func (p Params) Get(key string) (string, bool) {
	vs := p[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// All returns every value of key.
func (p Params) All(key string) []string {
	return p[key]
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Encode is Stringify for Params.
func (p Params) Encode() string {
	m := make(map[string]any, len(p))
	for k, vs := range p {
		m[k] = vs
	}
	return Stringify(m)
}

// Stringify builds a query string with keys in sorted order. Slices
// repeat the key once per element, nil writes the bare key and empty
// slices are skipped. Keys and values are percent-encoded strictly, so
// spaces become %20 and !'()* are escaped.
func Stringify(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		ek := Escape(k)
		switch v := params[k].(type) {
		case nil:
			parts = append(parts, ek)
		case []string:
			for _, s := range v {
				parts = append(parts, ek+"="+Escape(s))
			}
		case []any:
			for _, s := range v {
				if s == nil {
					parts = append(parts, ek)
					continue
				}
				parts = append(parts, ek+"="+Escape(fmt.Sprint(s)))
			}
		default:
			parts = append(parts, ek+"="+Escape(fmt.Sprint(v)))
		}
	}
	return strings.Join(parts, "&")
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every byte except A-Z a-z 0-9 - _ . ~.
func Escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
