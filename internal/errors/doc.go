// Package errors provides structured, actionable error messages for vnp.
//
// Every error carries a code (e.g. "E201") that maps to a short message, a
// longer explanation and a documentation link. Errors can point at the
// route, page folders or file involved and suggest a fix:
//
//	err := errors.New("E202").
//	    AtRoute("/dashboard", "Dashboard").
//	    InFile("app/pages/Dashboard/dashboard.go").
//	    WithSuggestion("Export a func named Dashboard")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E202: Page export not found
//	//
//	//   /dashboard (Dashboard) app/pages/Dashboard/dashboard.go
//	//   ...
//
// # Error Categories
//
//   - routing: route table problems (duplicate routes, unresolved exports)
//   - hook: hook registry and hook execution problems
//   - render: render scheduler problems (missing components)
//   - startup: readiness and initialization problems
//   - config: vnp.json problems
//   - cli: command line problems
package errors
