package terms

import (
	"github.com/vango-dev/vnp/internal/demo/components"
	"github.com/vango-dev/vnp/pkg/vdom"
)

func Terms() *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		components.Navbar(components.NavbarProps{LogoText: "Terms of Use", LinkText: "Home", LinkTarget: "/"}),
		vdom.Section(vdom.Class("legal"),
			vdom.H1("Terms of Use"),
			vdom.P("This is a demo application. It is provided as is, without warranty of any kind."),
			vdom.P("Sessions are kept in memory and are lost when the server restarts."),
		),
		components.Footer(),
	)
}
