package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse reads a key specification into the ordered keys it names.
//
// Supported formats:
//   - Single keys: "a", "Escape", "esc", "Space"
//   - Combinations: "Meta+a", "ctrl+shift+p", "Control++"
//   - Vim-style: "<C-s>", "<D-a>", "<Esc>", "<CR>"
//
// Every key is normalized, so "cmd+A" yields ["Meta", "A"].
func Parse(spec string) ([]string, error) {
	if spec == Space {
		return []string{Space}, nil
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseCombination(spec)
	}

	k, err := parseKey(spec)
	if err != nil {
		return nil, err
	}
	return []string{k}, nil
}

// parseCombination parses "Meta+a" style notation. A trailing "++"
// names the plus key itself.
func parseCombination(spec string) ([]string, error) {
	var last string
	if strings.HasSuffix(spec, "++") {
		last = "+"
		spec = strings.TrimSuffix(spec, "++")
	}

	parts := strings.Split(spec, "+")
	keys := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		k, err := parseKey(p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if last != "" {
		keys = append(keys, last)
	}
	return keys, nil
}

// parseVimStyle parses the inside of "<C-s>" style notation.
func parseVimStyle(inner string) ([]string, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")
	keys := make([]string, 0, len(parts))

	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			keys = append(keys, Control)
		case "a", "m":
			keys = append(keys, Alt)
		case "s":
			keys = append(keys, Shift)
		case "d":
			keys = append(keys, Meta)
		default:
			return nil, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	k, err := parseKey(parts[len(parts)-1])
	if err != nil {
		return nil, err
	}
	return append(keys, k), nil
}

func parseKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidSpec
	}
	k := Normalize(name)
	if !IsKnown(k) {
		return "", fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	return k, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) []string {
	keys, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return keys
}

// Format joins keys back into "Meta+a" notation.
func Format(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if k == Space {
			parts[i] = "Space"
		} else {
			parts[i] = k
		}
	}
	return strings.Join(parts, "+")
}
