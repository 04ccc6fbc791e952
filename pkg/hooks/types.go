package hooks

import "context"

// Decision is the result of a gating hook.
type Decision uint8

const (
	// Deny blocks the transition. It is the zero value.
	Deny Decision = iota

	// Allow lets the transition proceed.
	Allow
)

// String returns the string representation of the Decision.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Allowed reports whether d is Allow.
func (d Decision) Allowed() bool {
	return d == Allow
}

// Phase names a lifecycle phase.
type Phase string

const (
	PhaseBefore  Phase = "before"
	PhaseAfter   Phase = "after"
	PhaseLeave   Phase = "leave"
	PhaseAlready Phase = "already"
)

// Phases lists every phase in evaluation order.
var Phases = []Phase{PhaseLeave, PhaseBefore, PhaseAfter, PhaseAlready}

// IsGating reports whether hooks of this phase can block a transition.
func (p Phase) IsGating() bool {
	return p == PhaseBefore || p == PhaseLeave
}

// Navigator lets a hook request a navigation. Redirects requested while a
// navigation is running are performed after it completes.
type Navigator interface {
	Redirect(path string)
}

// Transition is what a hook sees.
type Transition struct {
	// Route is the registered route pattern the hook belongs to.
	Route string

	// Path is the canonical navigation path.
	Path string

	// Query is the raw query string, without "?".
	Query string

	// Params holds values captured by :param and *catchall segments.
	Params map[string]string

	// Nav is the router driving the navigation.
	Nav Navigator
}

// Redirect forwards to Nav if set.
func (t Transition) Redirect(path string) {
	if t.Nav != nil {
		t.Nav.Redirect(path)
	}
}

// GateFunc is a before or leave hook. Returning an error denies the
// transition.
type GateFunc func(ctx context.Context, t Transition) (Decision, error)

// NotifyFunc is an after or already hook.
type NotifyFunc func(ctx context.Context, t Transition)

// Override is the set of hooks registered for one route.
type Override struct {
	Before  GateFunc
	After   NotifyFunc
	Leave   GateFunc
	Already NotifyFunc

	// Cascading applies the hooks to every descendant route as well.
	Cascading bool
}

// IsEmpty reports whether no hook is set.
func (o Override) IsEmpty() bool {
	return o.Before == nil && o.After == nil && o.Leave == nil && o.Already == nil
}

// Composed holds at most one hook per phase. A nil field means the phase is
// omitted.
type Composed struct {
	Before  GateFunc
	Leave   GateFunc
	After   NotifyFunc
	Already NotifyFunc
}

// IsZero reports whether every phase is omitted.
func (c Composed) IsZero() bool {
	return c.Before == nil && c.Leave == nil && c.After == nil && c.Already == nil
}

// Wrapper decorates the composed hooks of a route, e.g. for metrics or
// tracing. It must preserve nil phases.
type Wrapper func(route string, c Composed) Composed

// Wrap applies wrappers in order; the last wrapper is outermost.
func Wrap(route string, c Composed, wrappers ...Wrapper) Composed {
	for _, w := range wrappers {
		if w != nil {
			c = w(route, c)
		}
	}
	return c
}
