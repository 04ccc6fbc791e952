package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/vango-dev/vnp/internal/demo"
	"github.com/vango-dev/vnp/internal/errors"
	"github.com/vango-dev/vnp/pkg/hooks"
	"github.com/vango-dev/vnp/pkg/pages"
	"github.com/vango-dev/vnp/pkg/vdom"
)

func page(text string) vdom.Component {
	return vdom.Func(func() *vdom.VNode { return vdom.Text(text) })
}

func testTable(t *testing.T) *pages.Table {
	t.Helper()
	folders := []pages.Folder{
		{Segments: []string{"Home"}, Files: []string{"home.go"}, Exports: map[string]vdom.Component{"Home": page("home")}},
		{Segments: []string{"Dashboard"}, Files: []string{"dashboard.go"}, Exports: map[string]vdom.Component{"Dashboard": page("dash")}},
		{Segments: []string{"NotFound"}, Files: []string{"notfound.go"}, Exports: map[string]vdom.Component{"NotFound": page("404")}},
	}
	table, err := pages.FromFolders(folders)
	if err != nil {
		t.Fatalf("FromFolders() error = %v", err)
	}
	return table
}

func TestRootCommands(t *testing.T) {
	cmd := rootCmd()
	want := []string{"demo", "gen", "routes", "version"}
	var got []string
	for _, c := range cmd.Commands() {
		got = append(got, c.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestCodedBuildError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "duplicate route",
			err: &pages.MultiError{Errors: []pages.BuildError{{
				Type:    pages.ErrorDuplicateRoute,
				Route:   "/dashboard",
				Folders: []string{"Dashboard", "dashboard"},
			}}},
			want: "E201",
		},
		{
			name: "unresolved export",
			err:  &pages.MultiError{Errors: []pages.BuildError{{Type: pages.ErrorUnresolvedExport}}},
			want: "E202",
		},
		{
			name: "duplicate notfound",
			err:  &pages.MultiError{Errors: []pages.BuildError{{Type: pages.ErrorDuplicateNotFound}}},
			want: "E203",
		},
		{
			name: "several problems",
			err: &pages.MultiError{Errors: []pages.BuildError{
				{Type: pages.ErrorDuplicateRoute},
				{Type: pages.ErrorUnresolvedExport},
			}},
			want: "E200",
		},
		{
			name: "other error",
			err:  stderrors.New("boom"),
			want: "E200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := codedBuildError(tt.err)
			var coded *errors.Error
			if !stderrors.As(err, &coded) {
				t.Fatalf("codedBuildError() = %T, want *errors.Error", err)
			}
			if coded.Code != tt.want {
				t.Errorf("Code = %q, want %q", coded.Code, tt.want)
			}
			if !stderrors.Is(err, tt.err) {
				t.Error("coded error should wrap the build error")
			}
			if tt.want == "E201" && coded.Site.String() != "/dashboard (Dashboard, dashboard)" {
				t.Errorf("Site = %q", coded.Site.String())
			}
		})
	}
}

func TestWriteRoutes(t *testing.T) {
	var buf bytes.Buffer
	writeRoutes(&buf, testTable(t))

	want := "" +
		"ROUTE       PAGE\n" +
		"/           Home\n" +
		"/dashboard  Dashboard\n" +
		"*           NotFound\n" +
		"\n2 routes\n"
	if got := buf.String(); got != want {
		t.Errorf("writeRoutes() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteRoutesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRoutesJSON(&buf, testTable(t)); err != nil {
		t.Fatalf("writeRoutesJSON() error = %v", err)
	}

	var got []routeJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Route != "/" || got[0].File != "home.go" {
		t.Errorf("first = %+v", got[0])
	}
	if !got[2].NotFound || got[2].Page != "NotFound" {
		t.Errorf("last = %+v, want the not-found page", got[2])
	}
}

func TestDirTableMissing(t *testing.T) {
	_, err := dirTable(filepath.Join(t.TempDir(), "missing"))
	var coded *errors.Error
	if !stderrors.As(err, &coded) || coded.Code != "E204" {
		t.Errorf("dirTable() error = %v, want E204", err)
	}
}

func TestS3TableInvalidURL(t *testing.T) {
	_, err := s3Table(context.Background(), "https://example.com/pages")
	var coded *errors.Error
	if !stderrors.As(err, &coded) || coded.Code != "E280" {
		t.Errorf("s3Table() error = %v, want E280", err)
	}
}

func TestGetModulePath(t *testing.T) {
	dir := t.TempDir()
	if _, err := getModulePath(dir); err == nil {
		t.Error("getModulePath() without go.mod should fail")
	}

	gomod := "// comment\nmodule example.com/app\n\ngo 1.23\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := getModulePath(dir)
	if err != nil {
		t.Fatalf("getModulePath() error = %v", err)
	}
	if got != "example.com/app" {
		t.Errorf("getModulePath() = %q, want %q", got, "example.com/app")
	}
}

func TestPackageImportPath(t *testing.T) {
	tests := []struct {
		dir     string
		want    string
		wantErr bool
	}{
		{dir: "/src/app", want: "example.com/app"},
		{dir: "/src/app/pages", want: "example.com/app/pages"},
		{dir: "/src/app/internal/web/pages", want: "example.com/app/internal/web/pages"},
		{dir: "/src/other", wantErr: true},
	}

	for _, tt := range tests {
		got, err := packageImportPath("example.com/app", "/src/app", tt.dir)
		if tt.wantErr {
			if err == nil {
				t.Errorf("packageImportPath(%q) expected error", tt.dir)
			}
			continue
		}
		if err != nil {
			t.Errorf("packageImportPath(%q) error = %v", tt.dir, err)
			continue
		}
		if got != tt.want {
			t.Errorf("packageImportPath(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"app/pages", "pages"},
		{"app/Pages", "pages"},
		{"app/my-pages", "my_pages"},
		{"app/2pages", "pages"},
		{".", "pages"},
	}

	for _, tt := range tests {
		if got := packageName(tt.dir); got != tt.want {
			t.Errorf("packageName(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestManifestGenRelevant(t *testing.T) {
	g := &manifestGen{pagesDir: "/app/pages", output: "/app/pages/pages_gen.go"}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/app/pages/Home/home.go", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/app/pages/Blog", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/app/pages/Blog", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/app/pages/pages_gen.go", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/app/pages/Home/home_test.go", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/app/pages/Home/home.go", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/app/pages/Home/notes.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := g.relevant(tt.event); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestManifestGenRun(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Home/home.go":           "package home\n\nimport \"github.com/vango-dev/vnp/pkg/vdom\"\n\nfunc Home() *vdom.VNode { return vdom.Text(\"home\") }\n",
		"Dashboard/dashboard.go": "package dashboard\n\nimport \"github.com/vango-dev/vnp/pkg/vdom\"\n\nfunc Dashboard() *vdom.VNode { return vdom.Text(\"dash\") }\n",
	}
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}

	g := &manifestGen{
		pagesDir:   dir,
		output:     filepath.Join(dir, GeneratedFile),
		importPath: "example.com/app/pages",
		pkg:        "pages",
	}
	if err := g.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := os.ReadFile(g.output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"package pages",
		`"example.com/app/pages/Dashboard"`,
		`"example.com/app/pages/Home"`,
		"func Manifest() *pages.Manifest",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("generated file missing %q:\n%s", want, out)
		}
	}
}

func TestDemoConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vnp.json")
	if err := os.WriteFile(path, []byte(`{"pages":"web","server":{"port":9090}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := demoConfig(path)
	if err != nil {
		t.Fatalf("demoConfig() error = %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Pages != "web" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestPrintRoutes(t *testing.T) {
	routes := []demo.RouteInfo{
		{Route: "/", Name: "Home"},
		{Route: "/dashboard", Name: "Dashboard", Phases: []hooks.Phase{hooks.PhaseBefore}},
		{Route: "/notfound", Name: "NotFound", NotFound: true, Phases: []hooks.Phase{hooks.PhaseAfter}},
	}

	var buf bytes.Buffer
	printRoutes(&buf, routes)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[0], "-") {
		t.Errorf("route without hooks = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "before") {
		t.Errorf("guarded route = %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "*") {
		t.Errorf("not-found route = %q", lines[2])
	}
}
