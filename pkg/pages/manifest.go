package pages

import (
	"strings"

	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// Manifest is an ordered, typed list of page registrations. It replaces
// looking exports up by name at runtime: every page states its folder path
// and its component explicitly.
//
// Example usage:
//
//	m := pages.NewManifest()
//	m.Page("Home", vdom.Func(home.Home))
//	m.Page("Dashboard/Profile", vdom.Func(profile.Profile), pages.WithSEO(seo.Meta{seo.Title: "Profile"}))
//	table, err := m.Build()
type Manifest struct {
	pages []manifestPage
}

type manifestPage struct {
	segments  []string
	component vdom.Component
	export    string
	file      string
	seo       seo.Meta
}

// PageOption configures a manifest page.
type PageOption func(*manifestPage)

// WithSEO sets the page's SEO record, taking precedence over a record the
// component provides itself.
func WithSEO(m seo.Meta) PageOption {
	return func(p *manifestPage) {
		p.seo = m
	}
}

// WithExport records the exported symbol name of the component.
// It defaults to the folder name.
func WithExport(name string) PageOption {
	return func(p *manifestPage) {
		p.export = name
	}
}

// WithFile records the source file of the page.
// It defaults to the lower-cased folder name with a .go extension.
func WithFile(name string) PageOption {
	return func(p *manifestPage) {
		p.file = name
	}
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// Page registers a component for a folder path such as "Dashboard/Profile".
// Registration order is preserved.
func (m *Manifest) Page(path string, c vdom.Component, opts ...PageOption) *Manifest {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	p := manifestPage{segments: segments, component: c}
	if len(segments) > 0 {
		name := segments[len(segments)-1]
		p.export = name
		p.file = strings.ToLower(name) + ".go"
	}
	for _, opt := range opts {
		opt(&p)
	}
	m.pages = append(m.pages, p)
	return m
}

// Len returns the number of registrations.
func (m *Manifest) Len() int {
	return len(m.pages)
}

// Folders returns one folder per registration.
func (m *Manifest) Folders() []Folder {
	folders := make([]Folder, 0, len(m.pages))
	for _, p := range m.pages {
		folders = append(folders, Folder{
			Segments: p.segments,
			Files:    []string{p.file},
			Exports:  map[string]vdom.Component{p.export: p.component},
			SEO:      p.seo,
		})
	}
	return folders
}

// Build discovers and builds the route table for the manifest.
func (m *Manifest) Build() (*Table, error) {
	return FromFolders(m.Folders())
}
