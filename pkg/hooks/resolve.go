package hooks

import (
	"context"
	"log/slog"
	"slices"
)

// Resolve composes the hooks that apply to route.
func Resolve(route string, reg Registry) Composed {
	chain := reg.chain(route)

	var before, leave []GateFunc
	var after, already []NotifyFunc
	for _, o := range chain {
		if o.Before != nil {
			before = append(before, o.Before)
		}
		if o.Leave != nil {
			leave = append(leave, o.Leave)
		}
		if o.After != nil {
			after = append(after, o.After)
		}
		if o.Already != nil {
			already = append(already, o.Already)
		}
	}

	return Composed{
		Before:  Gates(before...),
		Leave:   Gates(leave...),
		After:   Notifiers(after...),
		Already: Notifiers(already...),
	}
}

// ResolveAll resolves every route once.
func ResolveAll(routes []string, reg Registry) map[string]Composed {
	out := make(map[string]Composed, len(routes))
	for _, route := range routes {
		out[route] = Resolve(route, reg)
	}
	return out
}

// chain returns the overrides for route: cascading ancestors root first,
// then the route's own entry unless it already appeared as an ancestor.
func (r Registry) chain(route string) []Override {
	ancestors := r.Ancestors(route)
	out := make([]Override, 0, len(ancestors)+1)
	for _, a := range ancestors {
		out = append(out, r[a])
	}
	if own, ok := r[route]; ok && !slices.Contains(ancestors, route) {
		out = append(out, own)
	}
	return out
}

// Gates composes gating hooks. Zero gates yield nil and a single gate is
// returned unchanged. Otherwise gates run in order until one denies, fails,
// or the context is done.
func Gates(chain ...GateFunc) GateFunc {
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return func(ctx context.Context, t Transition) (Decision, error) {
		for _, gate := range chain {
			if err := ctx.Err(); err != nil {
				return Deny, err
			}
			d, err := gate(ctx, t)
			if err != nil {
				return Deny, err
			}
			if !d.Allowed() {
				return Deny, nil
			}
		}
		return Allow, nil
	}
}

// Notifiers composes notification hooks. Zero hooks yield nil and a single
// hook is returned unchanged. Otherwise every hook runs in order; a hook
// that panics is logged and the rest still run.
func Notifiers(chain ...NotifyFunc) NotifyFunc {
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return func(ctx context.Context, t Transition) {
		for i, n := range chain {
			runNotify(ctx, i, n, t)
		}
	}
}

func runNotify(ctx context.Context, i int, n NotifyFunc, t Transition) {
	defer func() {
		if p := recover(); p != nil {
			slog.Default().Error("notification hook panicked",
				"component", "hooks", "route", t.Route, "index", i, "panic", p)
		}
	}()
	n(ctx, t)
}

// Continuation adapts a callback-style gate. fn must eventually call done
// exactly once; done(false) denies. Later calls are ignored. The gate waits
// for done or for ctx to finish, which denies with ctx's error.
func Continuation(fn func(ctx context.Context, t Transition, done func(allow bool))) GateFunc {
	return func(ctx context.Context, t Transition) (Decision, error) {
		result := make(chan bool, 1)
		done := func(allow bool) {
			select {
			case result <- allow:
			default:
			}
		}

		fn(ctx, t, done)

		// A synchronous done wins over a context that finished meanwhile.
		select {
		case allow := <-result:
			return decision(allow), nil
		default:
		}

		select {
		case allow := <-result:
			return decision(allow), nil
		case <-ctx.Done():
			return Deny, ctx.Err()
		}
	}
}

func decision(allow bool) Decision {
	if allow {
		return Allow
	}
	return Deny
}

// AllowAll is a gate that always allows.
func AllowAll(context.Context, Transition) (Decision, error) {
	return Allow, nil
}

// DenyAll is a gate that always denies.
func DenyAll(context.Context, Transition) (Decision, error) {
	return Deny, nil
}
