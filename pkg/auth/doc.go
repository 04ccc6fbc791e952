// Package auth connects an authentication service to navigation guards.
//
// The service itself is opaque: the shell only asks whether the current
// user is signed in. Guard turns that question into a before hook that
// redirects to a sign-in route and denies when the answer is no or the
// check fails.
//
//	reg := hooks.Registry{
//	    "/dashboard": {Before: auth.Guard(svc, "/login"), Cascading: true},
//	}
//
// Readiness is the startup signal a session service raises once it can
// answer; WaitReady bounds the wait so startup never blocks forever.
//
// The signed-in principal travels in the context.Context of a navigation.
// Store keeps principals for cookie-based sign-in sessions.
package auth
