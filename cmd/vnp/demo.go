package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vnp/internal/config"
	"github.com/vango-dev/vnp/internal/demo"
	"github.com/vango-dev/vnp/internal/errors"
)

func demoCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve the bundled demo application",
		Long: `Serve the demo shell: a home page, a login form, a guarded dashboard
with a nested profile page, two static pages, and a not-found page.

The dashboard guard cascades to /dashboard/profile. Sign in through the
login form to pass it.

Configuration is read from --config, then from vnp.json in the working
directory or its parents, and falls back to defaults.

Examples:
  vnp demo
  vnp demo --port 8080
  vnp demo --config ./vnp.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := demoConfig(configPath)
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			app, err := demo.New(cfg, logger)
			if err != nil {
				return err
			}

			printBanner()
			printRoutes(os.Stdout, app.Routes())
			fmt.Println()
			success("Serving on http://%s", cfg.Address())
			if cfg.Metrics.Enabled {
				info("Metrics at http://%s/metrics", cfg.Address())
			}
			fmt.Println()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx); err != nil {
				return errors.FromError(err, "E282")
			}
			info("Stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vnp.json")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// demoConfig loads the demo configuration. A missing vnp.json is not an
// error.
func demoConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.LoadFromWorkingDir()
	if err == nil {
		return cfg, nil
	}
	var coded *errors.Error
	if stderrors.As(err, &coded) && coded.Code == "E141" {
		return config.New(), nil
	}
	return nil, err
}

func printRoutes(w io.Writer, routes []demo.RouteInfo) {
	width := len("ROUTE")
	for _, r := range routes {
		width = max(width, len(displayRoute(r)))
	}
	for _, r := range routes {
		hooks := "-"
		if len(r.Phases) > 0 {
			names := make([]string, len(r.Phases))
			for i, p := range r.Phases {
				names[i] = string(p)
			}
			hooks = strings.Join(names, ", ")
		}
		fmt.Fprintf(w, "  %-*s  %-12s  %s\n", width, displayRoute(r), r.Name, hooks)
	}
}

func displayRoute(r demo.RouteInfo) string {
	if r.NotFound {
		return "*"
	}
	return r.Route
}
