package pages

import (
	"errors"
	"testing"

	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/vdom"
)

func TestManifestBuild(t *testing.T) {
	m := NewManifest().
		Page("Home", comp("home")).
		Page("Dashboard/Profile", comp("profile"), WithSEO(seo.Meta{seo.Title: "Profile"})).
		Page("NotFound", comp("404"))

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}

	table, err := m.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e, ok := table.Lookup("/dashboard/profile")
	if !ok {
		t.Fatal("Lookup(/dashboard/profile) not found")
	}
	if got := rendered(e.Component); got != "profile" {
		t.Errorf("component for /dashboard/profile renders %q, want profile", got)
	}
	if e.SEO[seo.Title] != "Profile" {
		t.Errorf("SEO title = %q, want Profile", e.SEO[seo.Title])
	}
	if e.File != "profile.go" {
		t.Errorf("File = %q, want profile.go", e.File)
	}
	if _, ok := table.NotFound(); !ok {
		t.Error("NotFound() missing")
	}
}

func TestManifestFolders(t *testing.T) {
	c := comp("x")
	folders := NewManifest().Page("/Terms/", c, WithExport("TermsPage"), WithFile("terms_page.go")).Folders()
	if len(folders) != 1 {
		t.Fatalf("Folders() = %v", folders)
	}
	f := folders[0]
	if len(f.Segments) != 1 || f.Segments[0] != "Terms" {
		t.Errorf("Segments = %q", f.Segments)
	}
	if f.Files[0] != "terms_page.go" {
		t.Errorf("Files = %q", f.Files)
	}
	if f.Exports["TermsPage"] != c {
		t.Errorf("Exports = %v", f.Exports)
	}
}

func TestManifestMismatchedFileIsSkipped(t *testing.T) {
	table, err := NewManifest().
		Page("Home", comp("h")).
		Page("Helpers", comp("x"), WithFile("util.go")).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestManifestDuplicate(t *testing.T) {
	_, err := NewManifest().
		Page("About", comp("a")).
		Page("about", vdom.Text("b")).
		Build()
	var me *MultiError
	if !errors.As(err, &me) || !me.Has(ErrorDuplicateRoute) {
		t.Errorf("Build() error = %v, want duplicate route", err)
	}
}
