package profile

import (
	"time"

	"github.com/vango-dev/vnp/internal/demo/pages/Dashboard/Utils"
	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/vdom"
)

var launched = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Profile shows the account card. It inherits the dashboard guard.
func Profile() *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		vdom.Div(vdom.Class("card"),
			vdom.Span(vdom.Class("avatar"), utils.Initials("VNP Member")),
			vdom.H1("Your Profile"),
			vdom.P(utils.MemberSince(launched)),
			router.Link("/dashboard", "Back to dashboard"),
		),
	)
}
