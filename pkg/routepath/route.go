package routepath

import "strings"

// HomeSegment is the folder name that maps to the root route.
const HomeSegment = "home"

// FromSegments builds the canonical route for a page folder path.
// Every segment is lower-cased and the result is joined with "/".
// A single "home" segment (any case) collapses to "/".
func FromSegments(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	if len(segments) == 1 && strings.EqualFold(segments[0], HomeSegment) {
		return "/"
	}
	lowered := make([]string, len(segments))
	for i, seg := range segments {
		lowered[i] = strings.ToLower(seg)
	}
	return "/" + strings.Join(lowered, "/")
}

// Split returns the segments of a route. The root route has none.
func Split(route string) []string {
	route = strings.Trim(route, "/")
	if route == "" {
		return nil
	}
	return strings.Split(route, "/")
}

// Depth returns the number of segments in a route.
func Depth(route string) int {
	return len(Split(route))
}

// IsAncestor reports whether ancestor equals route or is a prefix of it
// ending on a segment boundary. The root route is an ancestor of every route.
func IsAncestor(ancestor, route string) bool {
	if ancestor == route {
		return true
	}
	if ancestor == "/" {
		return strings.HasPrefix(route, "/")
	}
	return strings.HasPrefix(route, ancestor) && route[len(ancestor)] == '/'
}

// IsCanonical reports whether route is already in canonical form:
// leading slash, no trailing slash (except root), no empty segments,
// no upper-case letters.
func IsCanonical(route string) bool {
	if route == "/" {
		return true
	}
	if !strings.HasPrefix(route, "/") || strings.HasSuffix(route, "/") {
		return false
	}
	if strings.Contains(route, "//") {
		return false
	}
	return route == strings.ToLower(route)
}
