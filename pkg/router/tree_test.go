package router

import (
	"testing"

	"github.com/vango-dev/vnp/pkg/routepath"
)

func TestNodeInsert(t *testing.T) {
	root := newNode()

	if n := root.insert("/"); n != root {
		t.Error("insert(/) should return the root")
	}
	if a, b := root.insert("/users"), root.insert("/Users"); a != b {
		t.Error("static segments should share a node regardless of case")
	}

	n := root.insert("/users/:id")
	if root.static["users"].param != n || n.name != "id" {
		t.Errorf("param node = %+v", n)
	}

	n = root.insert("/docs/*path/ignored")
	if root.static["docs"].rest != n || n.name != "path" {
		t.Errorf("rest node = %+v", n)
	}
}

func TestNodeLookup(t *testing.T) {
	root := newNode()
	for _, p := range []string{"/", "/users", "/users/new", "/users/:id", "/users/:id/posts", "/docs/*path"} {
		root.insert(p).reg = &registration{pattern: p}
	}

	tests := []struct {
		path    string
		pattern string
		params  map[string]string
	}{
		{"/", "/", nil},
		{"/users", "/users", nil},
		{"/users/new", "/users/new", nil},
		{"/users/42", "/users/:id", map[string]string{"id": "42"}},
		{"/users/42/posts", "/users/:id/posts", map[string]string{"id": "42"}},
		{"/docs/a/b/c", "/docs/*path", map[string]string{"path": "a/b/c"}},
		{"/USERS", "/users", nil},
		{"/missing", "", nil},
		{"/users/42/other", "", nil},
	}

	for _, tt := range tests {
		params := make(map[string]string)
		n := root.lookup(routepath.Split(tt.path), params)
		if tt.pattern == "" {
			if n != nil {
				t.Errorf("lookup(%q) = %q, want no match", tt.path, n.reg.pattern)
			}
			continue
		}
		if n == nil {
			t.Errorf("lookup(%q) = no match, want %q", tt.path, tt.pattern)
			continue
		}
		if n.reg.pattern != tt.pattern {
			t.Errorf("lookup(%q) = %q, want %q", tt.path, n.reg.pattern, tt.pattern)
		}
		if len(params) != len(tt.params) {
			t.Errorf("lookup(%q) params = %v, want %v", tt.path, params, tt.params)
		}
		for k, v := range tt.params {
			if params[k] != v {
				t.Errorf("lookup(%q) params[%q] = %q, want %q", tt.path, k, params[k], v)
			}
		}
	}
}
