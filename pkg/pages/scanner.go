package pages

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/vnp/pkg/vdom"
)

// ExportKind describes how a page component is declared.
type ExportKind string

const (
	// ExportFunc is a top-level func() *vdom.VNode.
	ExportFunc ExportKind = "func"

	// ExportVar is a top-level variable holding a vdom.Component.
	ExportVar ExportKind = "var"
)

// ScannedPage is a page folder found in Go source.
type ScannedPage struct {
	// Segments is the folder path from the pages root.
	Segments []string

	// Route is the canonical route of the folder.
	Route string

	// Dir is the folder path relative to the pages root, slash separated.
	Dir string

	// File is the path of the page file.
	File string

	// Package is the Go package name declared in File.
	Package string

	// Export is the matching exported symbol, empty when none was found.
	Export string

	// Kind is how Export is declared.
	Kind ExportKind
}

// Resolved reports whether the page has a usable export.
func (p ScannedPage) Resolved() bool {
	return p.Export != ""
}

// Folder converts the scanned page for Discover. Components are not
// available from source, so the export maps to a nil component.
func (p ScannedPage) Folder() Folder {
	f := Folder{
		Segments: p.Segments,
		Files:    []string{filepath.Base(p.File)},
	}
	if p.Export != "" {
		f.Exports = map[string]vdom.Component{p.Export: nil}
	}
	return f
}

// Scanner scans a pages root for page folders written in Go.
type Scanner struct {
	rootDir string
}

// NewScanner creates a new page scanner.
func NewScanner(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.rootDir
}

// Scan walks the pages root and returns every page folder sorted by route.
// Folders without a page file are skipped; page folders without a matching
// export are returned unresolved.
func (s *Scanner) Scan() ([]ScannedPage, error) {
	info, err := os.Stat(s.rootDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.rootDir)
	}

	var found []ScannedPage
	err = filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == s.rootDir {
			return nil
		}
		if skipDir(d.Name()) {
			return filepath.SkipDir
		}

		page, ok, err := s.scanDir(path)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if ok {
			found = append(found, page)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Route != found[j].Route {
			return found[i].Route < found[j].Route
		}
		return found[i].Dir < found[j].Dir
	})
	return found, nil
}

// Folders scans and converts the result for Discover.
func (s *Scanner) Folders() ([]Folder, error) {
	found, err := s.Scan()
	if err != nil {
		return nil, err
	}
	folders := make([]Folder, len(found))
	for i, p := range found {
		folders[i] = p.Folder()
	}
	return folders, nil
}

// Table scans and builds a route table. Entries carry no components; the
// table is meant for auditing routes.
func (s *Scanner) Table() (*Table, error) {
	folders, err := s.Folders()
	if err != nil {
		return nil, err
	}
	return FromFolders(folders)
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}

// scanDir checks a single folder for a page file and parses it.
func (s *Scanner) scanDir(dir string) (ScannedPage, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScannedPage{}, false, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, name)
	}

	folder := filepath.Base(dir)
	file, ok := pageFile(folder, files)
	if !ok {
		return ScannedPage{}, false, nil
	}

	rel, err := filepath.Rel(s.rootDir, dir)
	if err != nil {
		return ScannedPage{}, false, err
	}
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")

	page := ScannedPage{
		Segments: segments,
		Route:    RouteFor(segments),
		Dir:      rel,
		File:     filepath.Join(dir, file),
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, page.File, nil, parser.SkipObjectResolution)
	if err != nil {
		return ScannedPage{}, false, err
	}
	page.Package = f.Name.Name
	page.Export, page.Kind = findExport(f, folder)

	return page, true, nil
}

// findExport returns the exported top-level symbol named after the folder.
// Functions must take no arguments and return one value.
func findExport(f *ast.File, name string) (string, ExportKind) {
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil || !d.Name.IsExported() || !strings.EqualFold(d.Name.Name, name) {
				continue
			}
			if d.Type.Params.NumFields() != 0 || d.Type.Results.NumFields() != 1 {
				continue
			}
			return d.Name.Name, ExportFunc

		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, ident := range vs.Names {
					if ident.IsExported() && strings.EqualFold(ident.Name, name) {
						return ident.Name, ExportVar
					}
				}
			}
		}
	}
	return "", ""
}
