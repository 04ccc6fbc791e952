// Package pages turns a folder hierarchy of page modules into a flat route
// table.
//
// # Discovery
//
// Every folder under the pages root is a candidate. A folder is a page only
// if it holds a file whose base name, extension stripped, equals the folder
// name case-insensitively:
//
//	pages/
//	├── Home/home.go                   → /
//	├── Dashboard/dashboard.go         → /dashboard
//	├── Dashboard/Profile/profile.go   → /dashboard/profile
//	├── Dashboard/Utils/format.go      (helper folder, skipped)
//	└── NotFound/notfound.go           → catch-all
//
// The exported component of a page is the export whose name matches the
// folder name case-insensitively. A page without one is a build error, as
// are two folders producing the same route and more than one not-found page.
//
// # Providers
//
// Folders come from a Manifest (typed registration, usually generated), a
// Scanner (Go source under a pages root), or an S3Lister (a deployed bundle).
// Generator writes the Manifest for a scanned tree.
package pages
