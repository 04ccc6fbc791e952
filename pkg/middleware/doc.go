// Package middleware instruments navigation with Prometheus metrics and
// OpenTelemetry spans.
//
// Both instruments are hooks.Wrapper values: they decorate the composed
// hooks of each route once, when the shell resolves its registry.
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	sh, err := shell.New(table, overrides,
//	    shell.WithWrappers(m.Wrapper(), middleware.Tracing()),
//	)
//
// Metrics also implements render.Observer so the render scheduler can
// report committed, superseded and missing transitions:
//
//	sched := render.NewScheduler(display, render.WithObserver(m))
//
// Expose the registry with promhttp:
//
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
