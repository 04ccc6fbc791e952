// Package router implements the navigation primitive the shell drives.
//
// Routes are registered with a handler and the composed lifecycle hooks for
// that route. Patterns may contain :param and *catchall segments:
//
//	r := router.New()
//	r.On("/", home, hooks.Composed{})
//	r.On("/dashboard", dash, resolved["/dashboard"])
//	r.NotFound(notFound, resolved["/notfound"])
//	r.Hooks(hooks.Composed{After: scrollTop})
//	res := r.Navigate(ctx, "/dashboard")
//
// # Navigation order
//
// Navigate canonicalizes the path and matches it, falling back to the
// not-found registration. Navigating to the current path runs the already
// hooks only. Otherwise the phases run in this order:
//
//  1. leave hooks of the current route, then the global leave hook
//  2. the global before hook, then the route's before hook
//  3. the handler, after which the route becomes current
//  4. the route's after hook, then the global after hook
//
// A denied or failing gate stops the navigation and leaves the current route
// unchanged. Navigations on one Router are serialized.
//
// # Redirects
//
// Hooks receive the Router as hooks.Navigator in their Transition. A
// redirect requested during a navigation runs after it completes. Chains of
// redirects are cut after a fixed number of hops.
package router
