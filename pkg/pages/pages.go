package pages

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/vnp/pkg/routepath"
	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// NotFoundName is the page name, compared case-insensitively, that marks the
// catch-all page.
const NotFoundName = "notfound"

// Folder is one folder under the pages root as a provider sees it.
type Folder struct {
	// Segments is the folder path from the pages root, root to leaf.
	Segments []string

	// Files are the base names of the files directly inside the folder.
	Files []string

	// Exports maps exported symbol names to components.
	Exports map[string]vdom.Component

	// SEO overrides the record the component provides, if set.
	SEO seo.Meta
}

// PageModule is a folder that qualified as a page.
type PageModule struct {
	Segments  []string
	Export    string
	Component vdom.Component
	SEO       seo.Meta
	File      string
}

// Name returns the page name, which is its folder name.
func (m PageModule) Name() string {
	if len(m.Segments) == 0 {
		return ""
	}
	return m.Segments[len(m.Segments)-1]
}

// Entry is one row of the route table.
type Entry struct {
	Route     string
	Name      string
	Component vdom.Component
	SEO       seo.Meta
	Segments  []string
	File      string
}

// IsNotFound reports whether this entry is the catch-all page.
func (e Entry) IsNotFound() bool {
	return strings.EqualFold(e.Name, NotFoundName)
}

// RouteFor returns the canonical route for a folder path.
func RouteFor(segments []string) string {
	return routepath.FromSegments(segments)
}

// Discover selects the page folders and resolves each one's component.
// Folders without a matching page file are skipped. A page folder without a
// matching export is reported in the returned *MultiError; the remaining
// modules are still returned.
func Discover(folders []Folder) ([]PageModule, error) {
	var mods []PageModule
	var problems []BuildError

	for _, f := range folders {
		if len(f.Segments) == 0 {
			continue
		}
		name := f.Segments[len(f.Segments)-1]

		file, ok := pageFile(name, f.Files)
		if !ok {
			continue
		}

		export, comp, ok := lookupExport(name, f.Exports)
		if !ok {
			problems = append(problems, BuildError{
				Type:    ErrorUnresolvedExport,
				Message: "no export named " + name + " in " + file,
				Route:   RouteFor(f.Segments),
				Folders: []string{folderName(f.Segments)},
			})
			continue
		}

		meta := f.SEO
		if meta == nil {
			meta = seo.Of(comp)
		}

		mods = append(mods, PageModule{
			Segments:  f.Segments,
			Export:    export,
			Component: comp,
			SEO:       meta,
			File:      file,
		})
	}

	if len(problems) > 0 {
		return mods, &MultiError{Errors: problems}
	}
	return mods, nil
}

// pageFile finds the file named after the folder.
func pageFile(name string, files []string) (string, bool) {
	for _, file := range files {
		base := filepath.Base(file)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if strings.EqualFold(stem, name) {
			return file, true
		}
	}
	return "", false
}

// lookupExport finds the export named after the folder. Exact matches win
// over case-insensitive ones; ties are broken by name for determinism.
func lookupExport(name string, exports map[string]vdom.Component) (string, vdom.Component, bool) {
	if c, ok := exports[name]; ok {
		return name, c, true
	}
	var names []string
	for k := range exports {
		if strings.EqualFold(k, name) {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		return "", nil, false
	}
	sort.Strings(names)
	return names[0], exports[names[0]], true
}

// Build inserts every module into a route table. Duplicate routes and
// duplicate not-found pages are reported together in a *MultiError and no
// table is returned.
func Build(mods []PageModule) (*Table, error) {
	t := &Table{entries: make(map[string]Entry, len(mods))}

	byRoute := make(map[string][]PageModule)
	var notFound []PageModule
	for _, m := range mods {
		if strings.EqualFold(m.Name(), NotFoundName) {
			notFound = append(notFound, m)
			continue
		}
		route := RouteFor(m.Segments)
		byRoute[route] = append(byRoute[route], m)
	}

	var problems []BuildError
	for _, route := range sortedKeys(byRoute) {
		group := byRoute[route]
		if len(group) > 1 {
			problems = append(problems, BuildError{
				Type:    ErrorDuplicateRoute,
				Message: "multiple folders resolve to " + route,
				Route:   route,
				Folders: folderNames(group),
			})
			continue
		}
		t.entries[route] = entryFor(route, group[0])
	}

	if len(notFound) > 1 {
		problems = append(problems, BuildError{
			Type:    ErrorDuplicateNotFound,
			Message: "more than one not-found page",
			Folders: folderNames(notFound),
		})
	} else if len(notFound) == 1 {
		e := entryFor(RouteFor(notFound[0].Segments), notFound[0])
		t.notFound = &e
	}

	if len(problems) > 0 {
		return nil, &MultiError{Errors: problems}
	}

	t.routes = sortedKeys(t.entries)
	return t, nil
}

// FromFolders runs Discover and Build. Discovery errors stop the build.
func FromFolders(folders []Folder) (*Table, error) {
	mods, err := Discover(folders)
	if err != nil {
		return nil, err
	}
	return Build(mods)
}

func entryFor(route string, m PageModule) Entry {
	return Entry{
		Route:     route,
		Name:      m.Name(),
		Component: m.Component,
		SEO:       m.SEO,
		Segments:  m.Segments,
		File:      m.File,
	}
}

func folderNames(mods []PageModule) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = folderName(m.Segments)
	}
	sort.Strings(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table maps canonical routes to page entries. It is read-only once built.
type Table struct {
	entries  map[string]Entry
	routes   []string
	notFound *Entry
}

// Lookup returns the entry registered for route.
func (t *Table) Lookup(route string) (Entry, bool) {
	e, ok := t.entries[route]
	return e, ok
}

// NotFound returns the catch-all entry, if one exists.
func (t *Table) NotFound() (Entry, bool) {
	if t.notFound == nil {
		return Entry{}, false
	}
	return *t.notFound, true
}

// Routes returns every exact-match route in sorted order.
func (t *Table) Routes() []string {
	out := make([]string, len(t.routes))
	copy(out, t.routes)
	return out
}

// Entries returns every exact-match entry sorted by route.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.routes))
	for i, r := range t.routes {
		out[i] = t.entries[r]
	}
	return out
}

// Len returns the number of exact-match routes.
func (t *Table) Len() int {
	return len(t.routes)
}
