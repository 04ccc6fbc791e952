package privacy

import (
	"github.com/vango-dev/vnp/internal/demo/components"
	"github.com/vango-dev/vnp/pkg/vdom"
)

func Privacy() *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		components.Navbar(components.NavbarProps{LogoText: "Privacy Policy", LinkText: "Home", LinkTarget: "/"}),
		vdom.Section(vdom.Class("legal"),
			vdom.H1("Privacy Policy"),
			vdom.P("The only data stored is the username you sign in with, held in a session cookie for at most one day."),
		),
		components.Footer(),
	)
}
