package notfound

import (
	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// NotFound is shown for every unknown route.
func NotFound() *vdom.VNode {
	return vdom.Div(vdom.Class("wrapper"),
		vdom.H1(vdom.Class("error-code"), "404"),
		vdom.P(vdom.Class("msg"), "This route exists only in the void."),
		router.Link("/", vdom.Class("home-btn"), "Return to Reality"),
	)
}
