// Package demo is the sample application served by "vnp demo": a public
// landing page, a sign-in form, and a dashboard guarded by a cascading
// before hook.
package demo

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vango-dev/vnp/internal/config"
	demopages "github.com/vango-dev/vnp/internal/demo/pages"
	"github.com/vango-dev/vnp/pkg/auth"
	"github.com/vango-dev/vnp/pkg/hooks"
	"github.com/vango-dev/vnp/pkg/middleware"
	"github.com/vango-dev/vnp/pkg/pages"
	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/server"
	"github.com/vango-dev/vnp/pkg/shell"
)

// Table builds the route table from the generated manifest.
func Table() (*pages.Table, error) {
	return demopages.Manifest().Build()
}

// Overrides returns the demo's route hooks. Everything under /dashboard
// requires a signed-in principal.
func Overrides(authRedirect string, logger *slog.Logger) hooks.Registry {
	return hooks.Registry{
		"/dashboard": {
			Before:    auth.Guard(auth.ContextService{}, authRedirect, auth.WithGuardLogger(logger)),
			Cascading: true,
		},
		"/notfound": {
			After: func(_ context.Context, t hooks.Transition) {
				logger.Warn("404: user landed on an undefined route", "path", t.Path)
			},
		},
	}
}

// App is the wired demo application.
type App struct {
	Shell    *shell.Shell
	Server   *server.Server
	Store    *auth.Store
	Registry *prometheus.Registry

	addr string
}

// New wires the demo from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	renderDelay, err := cfg.RenderDelayDuration()
	if err != nil {
		return nil, err
	}
	readyTimeout, err := cfg.ReadyTimeoutDuration()
	if err != nil {
		return nil, err
	}

	table, err := Table()
	if err != nil {
		return nil, err
	}

	store := auth.NewStore()
	ready := auth.NewSignal()

	var wrappers []hooks.Wrapper
	var serverOpts []server.Option
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		wrappers = append(wrappers, m.Wrapper())
		serverOpts = append(serverOpts, server.WithMetrics(m, reg))
	}
	if cfg.Tracing.Enabled {
		wrappers = append(wrappers, middleware.Tracing(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	sh, err := shell.New(table, Overrides(cfg.AuthRedirect, logger.With("component", "demo")),
		shell.WithLogger(logger.With("component", "shell")),
		shell.WithDefaultSEO(seo.Meta(cfg.DefaultSEO)),
		shell.WithReadiness(ready, readyTimeout),
		shell.WithWrappers(wrappers...),
	)
	if err != nil {
		store.Close()
		return nil, err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.HashRouting = cfg.HashRouting
	srvCfg.DefaultSEO = seo.Meta(cfg.DefaultSEO)
	srvCfg.RenderDelay = renderDelay
	srvCfg.LoginRedirect = "/dashboard"
	serverOpts = append(serverOpts,
		server.WithLogger(logger.With("component", "server")),
		server.WithSessionStore(store),
	)

	// The in-memory store answers immediately.
	ready.Fire()

	return &App{
		Shell:    sh,
		Server:   server.New(sh, srvCfg, serverOpts...),
		Store:    store,
		Registry: reg,
		addr:     cfg.Address(),
	}, nil
}

// Run serves the demo until ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Store.Close()
	return a.Server.Run(ctx, a.addr)
}

// Routes lists the demo routes with the phases resolved for each.
func (a *App) Routes() []RouteInfo {
	table := a.Shell.Table()
	entries := table.Entries()
	if nf, ok := table.NotFound(); ok {
		entries = append(entries, nf)
	}

	out := make([]RouteInfo, 0, len(entries))
	for _, e := range entries {
		info := RouteInfo{Route: e.Route, Name: e.Name, NotFound: e.IsNotFound()}
		if c, ok := a.Shell.Composed(e.Route); ok {
			info.Phases = phases(c)
		}
		out = append(out, info)
	}
	return out
}

// RouteInfo describes one resolved route.
type RouteInfo struct {
	Route    string
	Name     string
	NotFound bool
	Phases   []hooks.Phase
}

func phases(c hooks.Composed) []hooks.Phase {
	var out []hooks.Phase
	if c.Leave != nil {
		out = append(out, hooks.PhaseLeave)
	}
	if c.Before != nil {
		out = append(out, hooks.PhaseBefore)
	}
	if c.After != nil {
		out = append(out, hooks.PhaseAfter)
	}
	if c.Already != nil {
		out = append(out, hooks.PhaseAlready)
	}
	return out
}
