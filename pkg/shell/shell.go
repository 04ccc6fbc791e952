package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/vnp/pkg/auth"
	"github.com/vango-dev/vnp/pkg/hooks"
	"github.com/vango-dev/vnp/pkg/pages"
	"github.com/vango-dev/vnp/pkg/render"
	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/seo"
)

// DefaultReadyTimeout bounds Ready when no timeout is configured.
const DefaultReadyTimeout = 5 * time.Second

// GlobalRoute labels the global hooks passed to wrappers.
const GlobalRoute = "*"

// Registrar is a router the shell can register pages with.
type Registrar interface {
	On(pattern string, h router.Handler, c hooks.Composed) error
	NotFound(h router.Handler, c hooks.Composed)
	Hooks(c hooks.Composed)
}

// Scroller resets the display's scroll position.
type Scroller interface {
	ScrollTop()
}

// Shell holds the resolved pages of an application.
type Shell struct {
	table    *pages.Table
	composed map[string]hooks.Composed
	global   hooks.Composed
	defaults seo.Meta

	readiness    auth.Readiness
	readyTimeout time.Duration
	readyOnce    sync.Once
	readyDone    chan struct{}
	readyErr     error
	degraded     atomic.Bool

	wrappers []hooks.Wrapper
	logger   *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the shell's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWrappers decorates every composed hook set, global hooks included.
func WithWrappers(w ...hooks.Wrapper) Option {
	return func(s *Shell) {
		s.wrappers = append(s.wrappers, w...)
	}
}

// WithDefaultSEO sets the descriptor merged under every page's own.
func WithDefaultSEO(m seo.Meta) Option {
	return func(s *Shell) {
		s.defaults = m.Clone()
	}
}

// WithReadiness makes Ready wait for r, at most timeout.
func WithReadiness(r auth.Readiness, timeout time.Duration) Option {
	return func(s *Shell) {
		s.readiness = r
		if timeout > 0 {
			s.readyTimeout = timeout
		}
	}
}

// WithGlobalHooks adds hooks that run for every navigation. Their after
// hook runs before the scroll reset.
func WithGlobalHooks(c hooks.Composed) Option {
	return func(s *Shell) {
		s.global = c
	}
}

// New validates the registry and resolves the hooks of every page in table.
func New(table *pages.Table, reg hooks.Registry, opts ...Option) (*Shell, error) {
	if table == nil {
		return nil, errors.New("shell: nil route table")
	}

	s := &Shell{
		table:        table,
		composed:     make(map[string]hooks.Composed, table.Len()+1),
		readyTimeout: DefaultReadyTimeout,
		logger:       slog.Default().With("component", "shell"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}

	routes := table.Routes()
	if nf, ok := table.NotFound(); ok {
		routes = append(routes, nf.Route)
	}
	for route, c := range hooks.ResolveAll(routes, reg) {
		s.composed[route] = hooks.Wrap(route, c, s.wrappers...)
	}

	for _, route := range reg.Routes() {
		if _, ok := s.composed[route]; ok || reg[route].Cascading {
			continue
		}
		s.logger.Warn("hooks registered for unknown route", "route", route)
	}
	return s, nil
}

// Table returns the route table.
func (s *Shell) Table() *pages.Table {
	return s.table
}

// Composed returns the resolved hooks of route.
func (s *Shell) Composed(route string) (hooks.Composed, bool) {
	c, ok := s.composed[route]
	return c, ok
}

// RegisterOption configures a single Register call.
type RegisterOption func(*registration)

type registration struct {
	scroller Scroller
}

// WithScroller resets sc's scroll position after every navigation.
func WithScroller(sc Scroller) RegisterOption {
	return func(r *registration) {
		r.scroller = sc
	}
}

// Register binds every page to r. Each handler forwards the merged SEO
// descriptor to meta, then starts a render on sched.
func (s *Shell) Register(r Registrar, sched *render.Scheduler, meta seo.Updater, opts ...RegisterOption) error {
	if sched == nil {
		return errors.New("shell: nil render scheduler")
	}
	cfg := &registration{}
	for _, opt := range opts {
		opt(cfg)
	}

	for _, e := range s.table.Entries() {
		if err := r.On(e.Route, s.handler(e, sched, meta), s.composed[e.Route]); err != nil {
			return fmt.Errorf("shell: register %s: %w", e.Route, err)
		}
	}
	if nf, ok := s.table.NotFound(); ok {
		r.NotFound(s.handler(nf, sched, meta), s.composed[nf.Route])
	}

	r.Hooks(s.globalHooks(cfg.scroller))
	return nil
}

func (s *Shell) globalHooks(sc Scroller) hooks.Composed {
	g := s.global
	if sc != nil {
		g.After = hooks.Notifiers(nonNil(g.After, func(context.Context, hooks.Transition) {
			sc.ScrollTop()
		})...)
	}
	return hooks.Wrap(GlobalRoute, g, s.wrappers...)
}

func nonNil(fns ...hooks.NotifyFunc) []hooks.NotifyFunc {
	out := fns[:0]
	for _, fn := range fns {
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

func (s *Shell) handler(e pages.Entry, sched *render.Scheduler, meta seo.Updater) router.Handler {
	return func(ctx context.Context, m router.Match) error {
		if meta != nil {
			if err := meta.UpdateMeta(ctx, seo.Merge(s.defaults, e.SEO)); err != nil {
				s.logger.Warn("seo update failed", "route", e.Route, "error", err)
			}
		}
		if err := sched.Render(e.Component); err != nil {
			return fmt.Errorf("render %s: %w", e.Route, err)
		}
		return nil
	}
}

// Ready waits for the readiness signal. The wait is shared by every caller
// and runs once per Shell. On timeout the shell is marked degraded, a
// warning is logged and the timeout error returned; later calls return the
// same result without waiting. A caller whose ctx ends first gets ctx.Err()
// and leaves the shared wait running.
func (s *Shell) Ready(ctx context.Context) error {
	s.readyOnce.Do(func() {
		s.readyDone = make(chan struct{})
		go s.awaitReady()
	})

	select {
	case <-s.readyDone:
		return s.readyErr
	default:
	}
	select {
	case <-s.readyDone:
		return s.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Shell) awaitReady() {
	defer close(s.readyDone)
	err := auth.WaitReady(context.Background(), s.readiness, s.readyTimeout)
	if err != nil {
		s.degraded.Store(true)
		s.logger.Warn("session service not ready, continuing degraded",
			"code", "E260", "timeout", s.readyTimeout, "error", err)
	}
	s.readyErr = err
}

// Degraded reports whether Ready timed out.
func (s *Shell) Degraded() bool {
	return s.degraded.Load()
}

// EntryRedirect returns the hash-routing URL for a path-based entry request.
// It reports false when hash routing is off or the request is for "/".
func EntryRedirect(u *url.URL, hashRouting bool) (string, bool) {
	if !hashRouting || u == nil || u.Path == "" || u.Path == "/" {
		return "", false
	}
	target := "/#" + u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target, true
}
