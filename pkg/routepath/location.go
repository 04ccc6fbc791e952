package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Errors returned for navigation paths that cannot be cleaned.
var (
	ErrNotLocal    = errors.New("routepath: not an in-app path")
	ErrBackslash   = errors.New("routepath: path contains backslash")
	ErrNUL         = errors.New("routepath: path contains NUL")
	ErrBadEscape   = errors.New("routepath: invalid percent escape")
	ErrEscapesRoot = errors.New("routepath: path climbs above root")
)

// Location is a cleaned navigation target.
type Location struct {
	// Path starts with "/" and has no empty, "." or ".." segments and no
	// trailing slash. Case is preserved.
	Path string

	// Query is the raw query without "?".
	Query string
}

// Route returns the table key for the location.
func (l Location) Route() string {
	return strings.ToLower(l.Path)
}

func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Clean normalizes raw into a Location. A hash-routing prefix ("#/x",
// "/#/x") is dropped, a missing leading slash is added, and "." and ".."
// segments are resolved. The query is kept as is.
func Clean(raw string) (Location, error) {
	raw = strings.TrimPrefix(raw, "/#")
	raw = strings.TrimPrefix(raw, "#")

	p, query := SplitQuery(raw)
	if strings.ContainsRune(p, '\\') {
		return Location{}, ErrBackslash
	}
	if strings.ContainsRune(p, 0) {
		return Location{}, ErrNUL
	}
	if strings.ContainsRune(p, '%') {
		decoded, err := url.PathUnescape(p)
		if err != nil {
			return Location{}, ErrBadEscape
		}
		if strings.ContainsRune(decoded, 0) {
			return Location{}, ErrNUL
		}
	}

	var stack []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(stack) == 0 {
				return Location{}, ErrEscapesRoot
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, seg)
		}
	}
	return Location{Path: "/" + strings.Join(stack, "/"), Query: query}, nil
}

// ParseNav cleans a path that came from a client or a hook redirect. Only
// in-app paths are accepted; absolute and protocol-relative URLs are
// rejected.
func ParseNav(raw string) (Location, error) {
	if strings.HasPrefix(raw, "//") || !strings.HasPrefix(raw, "/") {
		return Location{}, ErrNotLocal
	}
	return Clean(raw)
}

// SplitQuery splits raw at the first "?".
func SplitQuery(raw string) (path, query string) {
	path, query, _ = strings.Cut(raw, "?")
	return path, query
}
