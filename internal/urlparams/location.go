package urlparams

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is the current address of the client, split the way a
// browser's window.location is.
type Location struct {
	Origin   string
	Pathname string
	Search   string
	Hash     string
	Host     string
}

// ParseLocation splits an absolute URL into a Location.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parsing location: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Location{}, fmt.Errorf("parsing location: %q is not absolute", raw)
	}

	loc := Location{
		Origin:   u.Scheme + "://" + u.Host,
		Pathname: u.EscapedPath(),
		Host:     u.Host,
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.EscapedFragment()
	}
	return loc, nil
}

// Query parses the location's search string.
func (l Location) Query() Params {
	return Parse(l.Search)
}

// BrowserURL describes a URL to build relative to a Location.
type BrowserURL struct {
	// Pathname replaces the location's path when non-empty.
	Pathname string

	// Search and Hash become query strings after "?" and "#" when non-nil.
	Search map[string]any
	Hash   map[string]any

	// IncludeOrigin prefixes the location's origin.
	IncludeOrigin bool
}

// BuildURL composes a URL from b, falling back to l's path.
func (l Location) BuildURL(b BrowserURL) string {
	var sb strings.Builder
	if b.IncludeOrigin {
		sb.WriteString(l.Origin)
	}

	path := b.Pathname
	if path == "" {
		path = l.Pathname
	}
	sb.WriteString("/")
	sb.WriteString(strings.TrimLeft(path, "/"))

	if b.Search != nil {
		sb.WriteString("?")
		sb.WriteString(Stringify(b.Search))
	}
	if b.Hash != nil {
		sb.WriteString("#")
		sb.WriteString(Stringify(b.Hash))
	}
	return sb.String()
}

// WithSearchParams returns the location's URL with its query replaced by
// params. A nil hash keeps the current hash; a non-nil one replaces it and
// gains a leading "#" when missing.
func (l Location) WithSearchParams(params Params, hash *string) string {
	h := l.Hash
	if hash != nil {
		h = *hash
		if h != "" && !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
	}
	return l.Origin + l.Pathname + "?" + params.Encode() + h
}

// AppEnv derives the deployment environment from a host name: "dev" for
// localhost, otherwise the last label of the host.
func AppEnv(host string) string {
	if strings.Contains(host, "localhost") {
		return "dev"
	}
	host, _, _ = strings.Cut(host, ":")
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		return host[i+1:]
	}
	return host
}

// AppEnv is AppEnv for the location's host.
func (l Location) AppEnv() string {
	return AppEnv(l.Host)
}
