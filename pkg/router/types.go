package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/vango-dev/vnp/pkg/hooks"
)

// DefaultMaxRedirects bounds chained hook redirects.
const DefaultMaxRedirects = 8

// Router errors.
var (
	// ErrTooManyRedirects is reported when hooks keep redirecting.
	ErrTooManyRedirects = errors.New("router: too many redirects")

	// ErrDuplicatePattern is returned by On for an already registered pattern.
	ErrDuplicatePattern = errors.New("router: duplicate pattern")

	// ErrNoRoute is reported when nothing matches and no not-found handler
	// is registered.
	ErrNoRoute = errors.New("router: no route")

	// ErrBadPattern is returned by On for a pattern that is not an absolute
	// path of non-empty segments.
	ErrBadPattern = errors.New("router: bad pattern")
)

// Match describes the route a handler runs for.
type Match struct {
	// Route is the registered pattern.
	Route string

	// Path is the canonical path navigated to.
	Path string

	// Query is the raw query string without "?".
	Query string

	// Params holds :param and *catchall values.
	Params map[string]string

	// NotFound is set when the not-found handler runs.
	NotFound bool
}

// Handler runs when a navigation commits. Returning an error aborts the
// navigation without changing the current route.
type Handler func(ctx context.Context, m Match) error

// Outcome classifies a navigation.
type Outcome uint8

const (
	// Resolved means the handler ran and the route is now current.
	Resolved Outcome = iota

	// Blocked means a leave or before gate denied or failed.
	Blocked

	// Already means the path was already current; only already hooks ran.
	Already

	// NoMatch means the path was invalid or nothing handled it.
	NoMatch

	// Failed means the handler returned an error.
	Failed
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Blocked:
		return "blocked"
	case Already:
		return "already"
	case NoMatch:
		return "no_match"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports how a navigation ended. After redirects it describes the
// last navigation of the chain.
type Result struct {
	Outcome Outcome

	// Route is the matched pattern, empty on NoMatch.
	Route string

	// Path is the canonical path navigated to.
	Path string

	// NotFound is set when the not-found handler matched.
	NotFound bool

	// Redirects counts the hook redirects followed.
	Redirects int

	// Err is the gate, handler, or routing error, if any.
	Err error
}

// HookError is a failing or panicking hook.
type HookError struct {
	Phase hooks.Phase
	Route string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook for %s: %v", e.Phase, e.Route, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
