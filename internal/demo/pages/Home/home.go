package home

import (
	"github.com/vango-dev/vnp/internal/demo/components"
	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/vdom"
)

type page struct{}

// Home is the landing page.
var Home vdom.Component = page{}

func (page) Render() *vdom.VNode {
	return vdom.Div(vdom.Class("wrapper"),
		components.Navbar(components.NavbarProps{LogoText: "VNP Stack Official"}),
		vdom.Div(vdom.Class("content"),
			vdom.Span(vdom.Class("badge"), "v1.0.0"),
			vdom.H1(vdom.Class("title"), "VNP Stack"),
			vdom.P(vdom.Class("subtitle"), "Ultra-lightweight and blazingly fast."),
			vdom.Div(
				vdom.A(vdom.Href(components.SourceURL), vdom.Attribute("target", "_blank"), vdom.Class("github-btn"), "GitHub ↗"),
			),
		),
		components.Footer(),
	)
}

func (page) SEO() seo.Meta {
	return seo.Meta{
		seo.Title:       "VNP Stack | Home",
		seo.Description: "The Spartan Way to build web apps.",
	}
}
