package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/vango-dev/vnp/internal/config"
	"github.com/vango-dev/vnp/internal/errors"
	"github.com/vango-dev/vnp/pkg/pages"
)

// GeneratedFile is the default name of the generated manifest.
const GeneratedFile = "pages_gen.go"

func genCmd() *cobra.Command {
	var (
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate pages_gen.go from the pages directory",
		Long: `Scan the pages directory and generate the typed page manifest.

Every page folder must hold a file named after the folder that declares an
exported func or var with the folder's name (case-insensitive). The
generated Manifest() registers each page with its folder path, so routes
never depend on looking names up at runtime.

The output is deterministic - running it multiple times produces identical
output unless the pages change.

Examples:
  vnp gen                  # Regenerate <pages>/pages_gen.go
  vnp gen -o gen/pages.go  # Write somewhere else
  vnp gen --watch          # Regenerate on every change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			g, err := newManifestGen(cfg, output)
			if err != nil {
				return err
			}
			if err := g.run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return g.watch(ctx)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <pages>/pages_gen.go)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when pages change")

	return cmd
}

// manifestGen regenerates the manifest of one pages directory.
type manifestGen struct {
	pagesDir   string
	output     string
	importPath string
	pkg        string
}

func newManifestGen(cfg *config.Config, output string) (*manifestGen, error) {
	dir := cfg.PagesPath()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New("E204").WithDetail("Looked in " + dir)
	}
	if output == "" {
		output = filepath.Join(dir, GeneratedFile)
	}

	modulePath, err := getModulePath(cfg.Dir())
	if err != nil {
		return nil, errors.New("E281").Wrap(err)
	}
	importPath, err := packageImportPath(modulePath, cfg.Dir(), dir)
	if err != nil {
		return nil, err
	}

	return &manifestGen{
		pagesDir:   dir,
		output:     output,
		importPath: importPath,
		pkg:        packageName(filepath.Dir(output)),
	}, nil
}

func (g *manifestGen) run() error {
	info("Scanning %s...", g.pagesDir)
	scanned, err := pages.NewScanner(g.pagesDir).Scan()
	if err != nil {
		return err
	}
	info("Found %d pages", len(scanned))

	code, err := pages.NewGenerator(scanned, g.importPath, g.pkg).Generate()
	if err != nil {
		return codedBuildError(err)
	}
	if err := os.WriteFile(g.output, code, 0644); err != nil {
		return err
	}
	success("Generated %s", g.output)
	return nil
}

// watch regenerates after changes to Go files under the pages directory.
// Bursts of events are coalesced.
func (g *manifestGen) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, g.pagesDir); err != nil {
		return err
	}
	info("Watching %s (Ctrl+C to stop)", g.pagesDir)

	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						warn("Could not watch %s: %v", event.Name, err)
					}
				}
			}
			if g.relevant(event) {
				timer.Reset(settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			warn("Watcher error: %v", err)

		case <-timer.C:
			if err := g.run(); err != nil {
				errorMsg("%v", err)
			}
		}
	}
}

// relevant reports whether event may change the manifest.
func (g *manifestGen) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) == filepath.Clean(g.output) {
		return false
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasSuffix(name, "_test.go") {
		return false
	}
	// Directory renames and removals change the folder set.
	return strings.HasSuffix(name, ".go") || filepath.Ext(name) == ""
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// getModulePath reads the module path from go.mod in projectDir.
func getModulePath(projectDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, "go.mod"))
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}
	return "", fmt.Errorf("module declaration not found in go.mod")
}

// packageImportPath joins the module path with dir relative to the module
// root.
func packageImportPath(modulePath, moduleDir, dir string) (string, error) {
	rel, err := filepath.Rel(moduleDir, dir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return modulePath, nil
	}
	if strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside the module at %s", dir, moduleDir)
	}
	return modulePath + "/" + rel, nil
}

// packageName derives a Go package name from a directory.
func packageName(dir string) string {
	name := strings.ToLower(filepath.Base(dir))
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		return "pages"
	}
	return name
}
