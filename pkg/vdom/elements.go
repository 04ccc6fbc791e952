package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}
		default:
			children = append(children, arg)
		}
	}
	node.Children = appendChildren(nil, children)
	return node
}

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Form(args ...any) *VNode    { return El("form", args...) }
func Input(args ...any) *VNode   { return El("input", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }
func Br() *VNode                 { return El("br") }

// Attribute helpers.

func Class(v string) Attr            { return Attr{Key: "class", Value: v} }
func ID(v string) Attr               { return Attr{Key: "id", Value: v} }
func Href(v string) Attr             { return Attr{Key: "href", Value: v} }
func Type(v string) Attr             { return Attr{Key: "type", Value: v} }
func Name(v string) Attr             { return Attr{Key: "name", Value: v} }
func Action(v string) Attr           { return Attr{Key: "action", Value: v} }
func Method(v string) Attr           { return Attr{Key: "method", Value: v} }
func Disabled(v bool) Attr           { return Attr{Key: "disabled", Value: v} }
func Data(k, v string) Attr          { return Attr{Key: "data-" + k, Value: v} }
func Attribute(k string, v any) Attr { return Attr{Key: k, Value: v} }
