// Package routepath holds the string rules shared by the route table, the
// hook resolver and the router:
//
//   - FromSegments turns a page folder path into a canonical route
//     (["Dashboard", "Profile"] → "/dashboard/profile", ["Home"] → "/")
//   - IsAncestor answers segment-boundary prefix questions
//     ("/dash" is an ancestor of "/dash/profile" but not of "/dashboard")
//   - Clean and ParseNav normalize navigation paths before matching
package routepath
