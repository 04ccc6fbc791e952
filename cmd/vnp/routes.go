package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"github.com/vango-dev/vnp/internal/config"
	"github.com/vango-dev/vnp/internal/errors"
	"github.com/vango-dev/vnp/pkg/pages"
)

func routesCmd() *cobra.Command {
	var (
		dir    string
		s3URL  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `Build the route table and print every route.

By default the pages directory from vnp.json is scanned. Use --dir to scan
another directory, or --s3 to audit a deployed pages bundle.

Build problems (duplicate routes, page files without a matching export,
more than one not-found page) are reported and the command fails.

Examples:
  vnp routes
  vnp routes --dir ./app/pages
  vnp routes --s3 s3://my-bucket/releases/42/pages
  vnp routes --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				table *pages.Table
				err   error
			)
			if s3URL != "" {
				table, err = s3Table(cmd.Context(), s3URL)
			} else {
				table, err = dirTable(dir)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeRoutesJSON(os.Stdout, table)
			}
			writeRoutes(os.Stdout, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Pages directory (default: pages from vnp.json)")
	cmd.Flags().StringVar(&s3URL, "s3", "", "S3 location of a pages bundle (s3://bucket/prefix)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print routes as JSON")
	cmd.MarkFlagsMutuallyExclusive("dir", "s3")

	return cmd
}

// pagesDir resolves the directory to scan.
func pagesDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return "", err
	}
	return cfg.PagesPath(), nil
}

func dirTable(dir string) (*pages.Table, error) {
	dir, err := pagesDir(dir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New("E204").WithDetail("Looked in " + dir)
	}

	table, err := pages.NewScanner(dir).Table()
	if err != nil {
		return nil, codedBuildError(err)
	}
	return table, nil
}

func s3Table(ctx context.Context, raw string) (*pages.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	bucket, prefix, err := pages.ParseS3URL(raw)
	if err != nil {
		return nil, errors.New("E280").WithDetail(raw + " is not an s3:// URL").Wrap(err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	info("Listing s3://%s/%s...", bucket, prefix)
	folders, err := pages.NewS3Lister(s3.NewFromConfig(awsCfg), bucket, prefix).Folders(ctx)
	if err != nil {
		return nil, err
	}

	table, err := pages.FromFolders(folders)
	if err != nil {
		return nil, codedBuildError(err)
	}
	return table, nil
}

// codedBuildError maps route table problems to CLI error codes. A single
// problem gets its specific code; several share E200.
func codedBuildError(err error) error {
	var multi *pages.MultiError
	if !stderrors.As(err, &multi) {
		return errors.FromError(err, "E200")
	}

	if len(multi.Errors) != 1 {
		return errors.New("E200").WithDetail(strings.TrimSpace(multi.Error())).Wrap(err)
	}

	be := multi.Errors[0]
	code := "E200"
	switch be.Type {
	case pages.ErrorDuplicateRoute:
		code = "E201"
	case pages.ErrorUnresolvedExport:
		code = "E202"
	case pages.ErrorDuplicateNotFound:
		code = "E203"
	}
	return errors.New(code).AtRoute(be.Route, be.Folders...).WithDetail(be.Message).Wrap(err)
}

func writeRoutes(w io.Writer, table *pages.Table) {
	entries := table.Entries()
	width := len("ROUTE")
	for _, e := range entries {
		width = max(width, len(e.Route))
	}

	fmt.Fprintf(w, "%-*s  %s\n", width, "ROUTE", "PAGE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %s\n", width, e.Route, strings.Join(e.Segments, "/"))
	}
	if nf, ok := table.NotFound(); ok {
		fmt.Fprintf(w, "%-*s  %s\n", width, "*", strings.Join(nf.Segments, "/"))
	}
	fmt.Fprintf(w, "\n%d routes\n", table.Len())
}

type routeJSON struct {
	Route    string            `json:"route"`
	Page     string            `json:"page"`
	File     string            `json:"file,omitempty"`
	NotFound bool              `json:"notFound,omitempty"`
	SEO      map[string]string `json:"seo,omitempty"`
}

func writeRoutesJSON(w io.Writer, table *pages.Table) error {
	entries := table.Entries()
	if nf, ok := table.NotFound(); ok {
		entries = append(entries, nf)
	}

	out := make([]routeJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, routeJSON{
			Route:    e.Route,
			Page:     strings.Join(e.Segments, "/"),
			File:     e.File,
			NotFound: e.IsNotFound(),
			SEO:      e.SEO,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
