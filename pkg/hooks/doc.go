// Package hooks resolves per-route lifecycle hooks.
//
// A Registry maps routes to Overrides. An Override marked Cascading applies
// to its own route and to every descendant route on a segment boundary, so
// a guard declared on /dashboard also runs for /dashboard/profile but not
// for /dashboardx.
//
// Resolve merges, for one target route, the hooks of every cascading
// ancestor (root first) with the route's own hooks into one Composed value
// with at most one function per phase:
//
//   - before and leave are gating phases. Each gate returns a Decision; the
//     first Deny or error stops the chain.
//   - after and already are notification phases. Every hook runs in order.
//
// A phase with no hooks is nil. A phase with exactly one hook is that hook
// unchanged.
package hooks
