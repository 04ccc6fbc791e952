package pages

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGeneratorGenerate(t *testing.T) {
	found, err := NewScanner(setupPagesTree(t)).Scan()
	if err != nil {
		t.Fatal(err)
	}

	code, err := NewGenerator(found, "example.com/app/pages/", "routes").Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	src := string(code)

	checks := []string{
		GeneratedHeader,
		"package routes",
		`"github.com/vango-dev/vnp/pkg/pages"`,
		`"github.com/vango-dev/vnp/pkg/vdom"`,
		`dashboard_profile "example.com/app/pages/Dashboard/Profile"`,
		`m.Page("Home", vdom.Func(home.Home), pages.WithExport("Home"), pages.WithFile("home.go"))`,
		`m.Page("Dashboard", dashboard.Dashboard, pages.WithExport("Dashboard"), pages.WithFile("dashboard.go"))`,
		`m.Page("Dashboard/Profile", vdom.Func(dashboard_profile.PROFILE)`,
		"func Manifest() *pages.Manifest {",
	}
	for _, want := range checks {
		if !strings.Contains(src, want) {
			t.Errorf("generated code missing %q\n%s", want, src)
		}
	}
	if strings.Contains(src, "Utils") {
		t.Error("helper folder should not be generated")
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	found, err := NewScanner(setupPagesTree(t)).Scan()
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewGenerator(found, "example.com/app/pages", "").Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator(found, "example.com/app/pages", "").Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Generate() output is not deterministic")
	}
	if !bytes.Contains(a, []byte("package pages\n")) {
		t.Error("default package name should be pages")
	}
}

func TestGeneratorRejectsUnresolved(t *testing.T) {
	found := []ScannedPage{{Segments: []string{"Terms"}, Route: "/terms", Dir: "Terms", File: "Terms/terms.go"}}
	_, err := NewGenerator(found, "example.com/app/pages", "").Generate()
	var me *MultiError
	if !errors.As(err, &me) || !me.Has(ErrorUnresolvedExport) {
		t.Errorf("Generate() error = %v, want unresolved export", err)
	}
}

func TestGeneratorVarOnlyOmitsVdom(t *testing.T) {
	found := []ScannedPage{{
		Segments: []string{"About"}, Route: "/about", Dir: "About",
		File: "About/about.go", Export: "About", Kind: ExportVar,
	}}
	code, err := NewGenerator(found, "example.com/app/pages", "").Generate()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(code, []byte("pkg/vdom")) {
		t.Errorf("vdom import should be omitted:\n%s", code)
	}
}

func TestAliasFor(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{[]string{"Home"}, "home"},
		{[]string{"Dashboard", "Profile"}, "dashboard_profile"},
		{[]string{"my-page"}, "my_page"},
		{[]string{"404"}, "p404"},
	}
	for _, tt := range tests {
		if got := aliasFor(tt.segments); got != tt.want {
			t.Errorf("aliasFor(%q) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}

func TestGeneratorAliasCollision(t *testing.T) {
	g := NewGenerator([]ScannedPage{
		{Segments: []string{"my-page"}},
		{Segments: []string{"my_page"}},
		{Segments: []string{"Pages"}},
	}, "x", "")
	got := g.aliases()
	want := []string{"my_page", "my_page2", "pages2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("aliases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
