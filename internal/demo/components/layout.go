// Package components holds markup shared by the demo pages.
package components

import (
	"strconv"
	"time"

	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// SourceURL is the project repository.
const SourceURL = "https://github.com/vango-dev/vnp"

// NavbarProps configures Navbar.
type NavbarProps struct {
	LogoText   string
	LinkText   string
	LinkTarget string

	// Logout renders a sign-out button instead of a link.
	Logout bool
}

// Navbar renders the top navigation bar.
func Navbar(p NavbarProps) *vdom.VNode {
	if p.LogoText == "" {
		p.LogoText = "Protected Route Example"
	}
	if p.LinkText == "" {
		p.LinkText = "Login"
	}
	if p.LinkTarget == "" {
		p.LinkTarget = "/login"
	}

	var action *vdom.VNode
	if p.Logout {
		action = vdom.Form(vdom.Method("post"), vdom.Action("/logout"),
			vdom.Button(vdom.Type("submit"), vdom.Class("nav-item"), p.LinkText),
		)
	} else {
		action = router.Link(p.LinkTarget, vdom.Class("nav-item"), p.LinkText)
	}

	return vdom.Nav(vdom.Class("navbar"),
		vdom.Div(vdom.Class("content"),
			vdom.P(vdom.Class("logo"), p.LogoText),
			vdom.Div(vdom.Class("links"), action),
		),
	)
}

// Footer renders the page footer.
func Footer() *vdom.VNode {
	year := strconv.Itoa(time.Now().Year())
	return vdom.El("footer", vdom.Class("footer"),
		vdom.Div(vdom.Class("inner"),
			vdom.P(vdom.Class("copy"), "© "+year+" VNP Stack"),
			vdom.Div(vdom.Class("links"),
				router.Link("/privacy", "Privacy Policy"),
				router.Link("/terms", "Terms of Use"),
				vdom.A(vdom.Href(SourceURL), vdom.Attribute("target", "_blank"), "Source"),
			),
		),
	)
}
