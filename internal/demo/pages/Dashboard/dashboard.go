package dashboard

import (
	"github.com/vango-dev/vnp/internal/demo/components"
	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// Dashboard is the protected landing page for signed-in users.
func Dashboard() *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		components.Navbar(components.NavbarProps{
			LogoText: "User Dashboard",
			LinkText: "Logout",
			Logout:   true,
		}),
		vdom.Div(vdom.Class("card-container"),
			vdom.Div(vdom.Class("card"),
				vdom.Span(vdom.Class("user-badge"), "Secure Session"),
				vdom.H1("Welcome back"),
				vdom.P("You are viewing a protected route. Use the button in the header to logout."),
				router.Link("/dashboard/profile", "View profile"),
			),
		),
		components.Footer(),
	)
}
