package login

import "github.com/vango-dev/vnp/pkg/vdom"

// Login renders the sign-in form.
func Login() *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		vdom.Div(vdom.Class("card"),
			vdom.H1("Login or Register"),
			vdom.P(vdom.Class("helper-text"), "Pick any username to start a session."),
			vdom.Form(vdom.Method("post"), vdom.Action("/login"),
				vdom.Input(vdom.Type("text"), vdom.Name("username"), vdom.Attribute("placeholder", "username"), vdom.Attribute("required", true)),
				vdom.Button(vdom.Type("submit"), vdom.Class("login-btn"), "Continue"),
			),
		),
	)
}
