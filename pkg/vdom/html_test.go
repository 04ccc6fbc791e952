package vdom

import "testing"

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want string
	}{
		{"nil", nil, ""},
		{"text escaped", Text(`<b>"x" & 'y'</b>`), "&lt;b&gt;&quot;x&quot; &amp; &#39;y&#39;&lt;/b&gt;"},
		{"raw", Raw("<b>x</b>"), "<b>x</b>"},
		{"element", Div(Class("card"), ID("main"), H1("Title")), `<div class="card" id="main"><h1>Title</h1></div>`},
		{"void", Input(Type("text"), Disabled(true)), `<input disabled type="text">`},
		{"false boolean omitted", Button(Disabled(false), "Go"), `<button>Go</button>`},
		{"attr escaped", A(Href("/a?x=1&y=\"2\""), "link"), `<a href="/a?x=1&amp;y=&quot;2&quot;">link</a>`},
		{"fragment", Fragment(P("a"), nil, P("b")), "<p>a</p><p>b</p>"},
		{"component", Div(Func(func() *VNode { return Span("inner") })), "<div><span>inner</span></div>"},
		{"nil component output", Mount(Func(func() *VNode { return nil })), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(tt.node)
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHTMLErrors(t *testing.T) {
	self := &VNode{Kind: KindComponent}
	self.Comp = self

	tests := []struct {
		name string
		node *VNode
	}{
		{"unknown kind", &VNode{Kind: Kind(99)}},
		{"nested unknown kind", Div(P("ok"), &VNode{Kind: Kind(99)})},
		{"component renders to itself", self},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(tt.node)
			if err == nil {
				t.Fatalf("RenderHTML() = %q, want error", got)
			}
			if got != "" {
				t.Errorf("RenderHTML() = %q on error, want empty", got)
			}
		})
	}
}

func TestVNodeIsComponent(t *testing.T) {
	n := Div("x")
	var c Component = n
	if c.Render() != n {
		t.Error("VNode.Render() should return the node itself")
	}
}

func TestFuncNilRender(t *testing.T) {
	if got := Func(nil).Render(); got != nil {
		t.Errorf("Func(nil).Render() = %v, want nil", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindElement, "element"},
		{KindRaw, "raw"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
