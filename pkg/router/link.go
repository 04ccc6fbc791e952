package router

import "github.com/vango-dev/vnp/pkg/vdom"

// Link returns an anchor the client script intercepts: a click sends a
// navigate frame for href instead of loading the page.
func Link(href string, children ...any) *vdom.VNode {
	return vdom.A(append([]any{vdom.Href(href), vdom.Data("link", "true")}, children...)...)
}
