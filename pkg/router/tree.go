package router

import (
	"strings"

	"github.com/vango-dev/vnp/pkg/routepath"
)

// node is one segment of the pattern trie. Static children are keyed by
// lower-cased segment; a node has at most one ":param" child and one
// "*rest" child.
type node struct {
	static map[string]*node
	param  *node
	rest   *node

	// name is the parameter name of a param or rest node.
	name string

	// reg is set when a pattern ends here.
	reg *registration
}

func newNode() *node {
	return &node{}
}

// insert walks pattern, creating nodes as needed, and returns the node the
// pattern ends on. A "*rest" segment ends the pattern.
func (n *node) insert(pattern string) *node {
	cur := n
	for _, seg := range routepath.Split(pattern) {
		switch seg[0] {
		case '*':
			if cur.rest == nil {
				cur.rest = &node{name: seg[1:]}
			}
			return cur.rest
		case ':':
			if cur.param == nil {
				cur.param = &node{name: seg[1:]}
			}
			cur = cur.param
		default:
			key := strings.ToLower(seg)
			child, ok := cur.static[key]
			if !ok {
				if cur.static == nil {
					cur.static = make(map[string]*node)
				}
				child = newNode()
				cur.static[key] = child
			}
			cur = child
		}
	}
	return cur
}

// lookup returns the registered node matching segs and fills params.
// Static segments win over parameters, which win over a rest match.
func (n *node) lookup(segs []string, params map[string]string) *node {
	if len(segs) == 0 {
		if n.reg != nil {
			return n
		}
		return nil
	}

	head, tail := segs[0], segs[1:]
	if child, ok := n.static[strings.ToLower(head)]; ok {
		if found := child.lookup(tail, params); found != nil {
			return found
		}
	}
	if n.param != nil {
		params[n.param.name] = head
		if found := n.param.lookup(tail, params); found != nil {
			return found
		}
		delete(params, n.param.name)
	}
	if n.rest != nil && n.rest.reg != nil {
		params[n.rest.name] = strings.Join(segs, "/")
		return n.rest
	}
	return nil
}
