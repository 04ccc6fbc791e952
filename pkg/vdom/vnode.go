package vdom

// Kind tells which fields of a VNode are meaningful.
type Kind uint8

const (
	KindElement   Kind = iota // Tag, Props, Children
	KindText                  // Text, escaped on output
	KindFragment              // Children only
	KindComponent             // Comp, rendered when serialized
	KindRaw                   // Text, written verbatim
)

var kindNames = [...]string{"element", "text", "fragment", "component", "raw"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// VNode is a node in a rendered page tree.
type VNode struct {
	Kind     Kind
	Tag      string
	Props    Props
	Children []*VNode
	Text     string
	Comp     Component
}

// Render returns the node itself, so a built tree can be used as a page.
func (v *VNode) Render() *VNode {
	return v
}

// Props holds element attributes.
type Props map[string]any

// Attr is one attribute passed to an element factory.
type Attr struct {
	Key   string
	Value any
}

// Component is anything that renders to a tree. Pages are components.
type Component interface {
	Render() *VNode
}

// RenderFunc adapts a plain function to Component.
type RenderFunc func() *VNode

// Render calls f. A nil RenderFunc renders nothing.
func (f RenderFunc) Render() *VNode {
	if f == nil {
		return nil
	}
	return f()
}

// Func returns render as a Component.
func Func(render func() *VNode) Component {
	return RenderFunc(render)
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Raw creates a node written without escaping. Never pass user input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{Kind: KindFragment, Children: appendChildren(nil, children)}
}

// Mount defers c until the tree is serialized.
func Mount(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

// appendChildren converts factory arguments to nodes. Strings become text
// nodes, components are mounted, and nils are dropped.
func appendChildren(dst []*VNode, args []any) []*VNode {
	for _, arg := range args {
		switch v := arg.(type) {
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			dst = appendChildren(dst, toAny(v))
		case string:
			dst = append(dst, Text(v))
		case Component:
			if v != nil {
				dst = append(dst, Mount(v))
			}
		}
	}
	return dst
}

func toAny(nodes []*VNode) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
