// Package shell drives navigation for a page table.
//
// A Shell is built once per process from the route table and the hook
// registry. It resolves the composed hooks of every page up front and then
// registers the pages with any number of routers, one per connected client:
//
//	sh, err := shell.New(table, overrides,
//	    shell.WithDefaultSEO(cfg.DefaultSEO),
//	    shell.WithReadiness(sessions, 5*time.Second),
//	)
//	...
//	r := router.New()
//	sched := render.NewScheduler(display)
//	if err := sh.Register(r, sched, display, shell.WithScroller(display)); err != nil {
//	    return err
//	}
//	sh.Ready(ctx)
//	r.Resolve(ctx)
package shell
