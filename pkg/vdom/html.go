package vdom

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// booleanAttrs render as a bare attribute name when true.
var booleanAttrs = map[string]bool{
	"checked":  true,
	"disabled": true,
	"hidden":   true,
	"readonly": true,
	"required": true,
	"selected": true,
}

// RenderHTML returns the HTML serialization of node.
func RenderHTML(node *VNode) (string, error) {
	var b strings.Builder
	if err := WriteHTML(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteHTML writes the HTML serialization of node to w.
// Nested components are rendered as they are reached.
func WriteHTML(w io.Writer, node *VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case KindElement:
		return writeElement(w, node)
	case KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case KindFragment:
		return writeChildren(w, node.Children)
	case KindComponent:
		if node.Comp == nil {
			return nil
		}
		out := node.Comp.Render()
		if out == node {
			return fmt.Errorf("component renders to itself")
		}
		return WriteHTML(w, out)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func writeChildren(w io.Writer, children []*VNode) error {
	for _, child := range children {
		if err := WriteHTML(w, child); err != nil {
			return err
		}
	}
	return nil
}

func writeElement(w io.Writer, node *VNode) error {
	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := writeAttributes(w, node.Props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if IsVoidElement(node.Tag) {
		return nil
	}
	if err := writeChildren(w, node.Children); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", node.Tag)
	return err
}

func writeAttributes(w io.Writer, props Props) error {
	if len(props) == 0 {
		return nil
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		if booleanAttrs[key] {
			if on, ok := value.(bool); ok {
				if on {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}
		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

func attrToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values, including whitespace
// characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}

	return buf.String()
}
