// Package utils has helpers for dashboard pages. It has no page file, so
// it does not produce a route.
package utils

import (
	"strings"
	"time"
)

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(f[:1]))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}

// MemberSince formats a sign-up date.
func MemberSince(t time.Time) string {
	return "Member since " + t.Format("January 2006")
}
