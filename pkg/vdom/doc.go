// Package vdom provides the minimal node model page components render to.
//
// # Core Types
//
// VNode is the building block representing elements, text, fragments,
// nested components, and raw HTML. Component is anything that can render to
// a VNode; a *VNode is itself a Component that renders to itself, so an
// already-built tree may be mounted wherever a component is expected.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// # HTML
//
// RenderHTML serializes a tree to an HTML fragment. Text and attribute
// values are escaped; Raw nodes are written verbatim.
package vdom
