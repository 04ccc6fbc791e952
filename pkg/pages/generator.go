package pages

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"
	"unicode"
)

// GeneratedHeader is the first line of every generated manifest.
const GeneratedHeader = "// Code generated by vnp gen. DO NOT EDIT."

// Generator writes a Go file returning the Manifest for a scanned tree.
// The output is deterministic: the same pages always produce identical
// bytes.
type Generator struct {
	pages       []ScannedPage
	pagesImport string
	pkg         string
}

// NewGenerator creates a generator. pagesImport is the import path of the
// pages root; pkg is the package name of the generated file.
func NewGenerator(pages []ScannedPage, pagesImport, pkg string) *Generator {
	if pkg == "" {
		pkg = "pages"
	}
	return &Generator{
		pages:       pages,
		pagesImport: strings.TrimSuffix(pagesImport, "/"),
		pkg:         pkg,
	}
}

// Generate validates the pages and returns the formatted source.
func (g *Generator) Generate() ([]byte, error) {
	folders := make([]Folder, len(g.pages))
	for i, p := range g.pages {
		folders[i] = p.Folder()
	}
	if _, err := FromFolders(folders); err != nil {
		return nil, err
	}

	aliases := g.aliases()

	var buf bytes.Buffer
	buf.WriteString(GeneratedHeader + "\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.pkg)

	buf.WriteString("import (\n")
	buf.WriteString("\t\"github.com/vango-dev/vnp/pkg/pages\"\n")
	if g.hasFuncExports() {
		buf.WriteString("\t\"github.com/vango-dev/vnp/pkg/vdom\"\n")
	}
	buf.WriteString("\n")
	for i, p := range g.pages {
		fmt.Fprintf(&buf, "\t%s %q\n", aliases[i], g.pagesImport+"/"+p.Dir)
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// Manifest returns every page of the application in route order.\n")
	buf.WriteString("func Manifest() *pages.Manifest {\n")
	buf.WriteString("\tm := pages.NewManifest()\n")
	for i, p := range g.pages {
		ref := aliases[i] + "." + p.Export
		if p.Kind == ExportFunc {
			ref = "vdom.Func(" + ref + ")"
		}
		fmt.Fprintf(&buf, "\tm.Page(%q, %s, pages.WithExport(%q), pages.WithFile(%q))\n",
			p.Dir, ref, p.Export, filepath.Base(p.File))
	}
	buf.WriteString("\treturn m\n")
	buf.WriteString("}\n")

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated manifest: %w", err)
	}
	return out, nil
}

func (g *Generator) hasFuncExports() bool {
	for _, p := range g.pages {
		if p.Kind == ExportFunc {
			return true
		}
	}
	return false
}

// aliases returns a unique import alias per page.
func (g *Generator) aliases() []string {
	used := map[string]bool{"pages": true, "vdom": true}
	out := make([]string, len(g.pages))
	for i, p := range g.pages {
		base := aliasFor(p.Segments)
		alias := base
		for n := 2; used[alias]; n++ {
			alias = fmt.Sprintf("%s%d", base, n)
		}
		used[alias] = true
		out[i] = alias
	}
	return out
}

// aliasFor converts a folder path to an identifier: Dashboard/Profile
// becomes dashboard_profile.
func aliasFor(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		var sb strings.Builder
		for _, r := range strings.ToLower(seg) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteRune('_')
			}
		}
		parts = append(parts, sb.String())
	}
	alias := strings.Join(parts, "_")
	if alias == "" || !unicode.IsLetter([]rune(alias)[0]) {
		alias = "p" + alias
	}
	return alias
}
