package hooks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/vnp/pkg/routepath"
)

// Registry maps canonical routes to their overrides. It is static
// configuration and is never modified after startup.
type Registry map[string]Override

// RegistryError describes one malformed registry entry.
type RegistryError struct {
	Route  string
	Reason string
}

func (e RegistryError) Error() string {
	return fmt.Sprintf("hook registry entry %q: %s", e.Route, e.Reason)
}

// MultiRegistryError wraps every malformed entry.
type MultiRegistryError struct {
	Errors []RegistryError
}

func (e *MultiRegistryError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d hook registry errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap exposes each entry error to errors.As.
func (e *MultiRegistryError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, re := range e.Errors {
		errs[i] = re
	}
	return errs
}

// Validate reports entries whose key is not a canonical route and entries
// that set no hook.
func (r Registry) Validate() error {
	var errs []RegistryError
	for _, route := range r.Routes() {
		o := r[route]
		if !routepath.IsCanonical(route) {
			errs = append(errs, RegistryError{
				Route:  route,
				Reason: "route is not canonical (want lower-case, leading slash, no trailing slash)",
			})
		}
		if o.IsEmpty() {
			errs = append(errs, RegistryError{Route: route, Reason: "no hooks set"})
		}
	}
	if len(errs) > 0 {
		return &MultiRegistryError{Errors: errs}
	}
	return nil
}

// Routes returns the registered routes in sorted order.
func (r Registry) Routes() []string {
	routes := make([]string, 0, len(r))
	for route := range r {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Ancestors returns the cascading entries that apply to route: the route
// itself if it cascades, and every cascading segment-boundary prefix.
// They are ordered root first, ties broken by route.
func (r Registry) Ancestors(route string) []string {
	var out []string
	for candidate, o := range r {
		if o.Cascading && routepath.IsAncestor(candidate, route) {
			out = append(out, candidate)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := routepath.Depth(out[i]), routepath.Depth(out[j])
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}
