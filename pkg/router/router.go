package router

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/vango-dev/vnp/pkg/hooks"
	"github.com/vango-dev/vnp/pkg/routepath"
)

// registration is a pattern with its handler and hooks.
type registration struct {
	pattern  string
	handler  Handler
	hooks    hooks.Composed
	notFound bool
}

// state is the committed location.
type state struct {
	reg    *registration
	path   string
	query  string
	params map[string]string
}

// Router matches paths and runs navigations through lifecycle hooks.
type Router struct {
	// mu serializes navigations
	mu       sync.Mutex
	root     *node
	patterns map[string]*registration
	notFound *registration
	global   hooks.Composed
	current  *state
	location string

	// qmu guards the redirect queue
	qmu        sync.Mutex
	queue      []string
	navigating bool

	maxRedirects int
	baseCtx      context.Context
	onRedirect   func(Result)
	logger       *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxRedirects bounds chained redirects.
func WithMaxRedirects(n int) Option {
	return func(r *Router) {
		if n >= 0 {
			r.maxRedirects = n
		}
	}
}

// WithContext sets the context of redirects that start while no navigation
// is running. Once it is done such redirects are dropped.
func WithContext(ctx context.Context) Option {
	return func(r *Router) {
		if ctx != nil {
			r.baseCtx = ctx
		}
	}
}

// WithRedirectHandler sets fn to receive the result of redirects that start
// while no navigation is running. Redirects requested during a navigation
// are part of that navigation's Result instead.
func WithRedirectHandler(fn func(Result)) Option {
	return func(r *Router) {
		r.onRedirect = fn
	}
}

// New creates a router.
func New(opts ...Option) *Router {
	r := &Router{
		root:         newNode(),
		patterns:     make(map[string]*registration),
		location:     "/",
		maxRedirects: DefaultMaxRedirects,
		baseCtx:      context.Background(),
		logger:       slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// On registers a handler and its composed hooks for pattern.
func (r *Router) On(pattern string, h Handler, c hooks.Composed) error {
	if h == nil {
		return fmt.Errorf("router: nil handler for %s", pattern)
	}
	if !validPattern(pattern) {
		return fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patterns[pattern]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePattern, pattern)
	}
	node := r.root.insert(pattern)
	if node.reg != nil {
		return fmt.Errorf("%w: %s conflicts with %s", ErrDuplicatePattern, pattern, node.reg.pattern)
	}
	reg := &registration{pattern: pattern, handler: h, hooks: c}
	node.reg = reg
	r.patterns[pattern] = reg
	return nil
}

// NotFound registers the handler used when no pattern matches.
func (r *Router) NotFound(h Handler, c hooks.Composed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = &registration{pattern: "*", handler: h, hooks: c, notFound: true}
}

// Hooks sets the global hooks that run for every navigation.
func (r *Router) Hooks(c hooks.Composed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = c
}

// SetLocation sets the path Resolve navigates to.
func (r *Router) SetLocation(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = path
}

// Resolve navigates to the location set with SetLocation, "/" by default.
func (r *Router) Resolve(ctx context.Context) Result {
	r.mu.Lock()
	loc := r.location
	r.mu.Unlock()
	return r.Navigate(ctx, loc)
}

// Patterns returns every registered pattern in sorted order.
func (r *Router) Patterns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.patterns))
	for p := range r.patterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Current returns the committed location.
func (r *Router) Current() (Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Match{}, false
	}
	return r.current.match(), true
}

// Redirect queues a navigation to path. During a navigation it runs once
// the current one completes; otherwise it starts in the background under
// the router's base context and its result goes to the redirect handler.
func (r *Router) Redirect(path string) {
	r.qmu.Lock()
	r.queue = append(r.queue, path)
	idle := !r.navigating
	r.qmu.Unlock()

	if idle {
		go r.drain(r.baseCtx)
	}
}

// Navigate runs a navigation to path and then any redirects it requested.
func (r *Router) Navigate(ctx context.Context, path string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setNavigating(true)
	res := r.navigateLocked(ctx, path)
	return r.followLocked(ctx, res)
}

// drain runs queued redirects outside of any navigation.
func (r *Router) drain(ctx context.Context) {
	r.mu.Lock()
	if err := ctx.Err(); err != nil {
		r.qmu.Lock()
		dropped := len(r.queue)
		r.queue = nil
		r.qmu.Unlock()
		r.mu.Unlock()
		if dropped > 0 {
			r.logger.Debug("redirects dropped", "count", dropped, "error", err)
		}
		return
	}

	r.setNavigating(true)
	res := r.followLocked(ctx, Result{})
	r.mu.Unlock()

	// Another navigation may have taken the queue first.
	if res.Redirects == 0 && res.Err == nil {
		return
	}
	if r.onRedirect != nil {
		r.onRedirect(res)
	}
}

func (r *Router) setNavigating(v bool) {
	r.qmu.Lock()
	r.navigating = v
	r.qmu.Unlock()
}

// followLocked runs queued redirects until the queue is empty or the hop
// limit is hit. r.mu must be held.
func (r *Router) followLocked(ctx context.Context, res Result) Result {
	for hops := 0; ; hops++ {
		r.qmu.Lock()
		if len(r.queue) == 0 {
			r.navigating = false
			r.qmu.Unlock()
			return res
		}
		next := r.queue[0]
		r.queue = r.queue[1:]
		if hops >= r.maxRedirects {
			r.queue = nil
			r.navigating = false
			r.qmu.Unlock()
			r.logger.Error("redirect loop stopped", "path", next, "hops", hops)
			res.Err = fmt.Errorf("%w: stopped at %s after %d hops", ErrTooManyRedirects, next, hops)
			return res
		}
		r.qmu.Unlock()

		r.logger.Debug("following redirect", "path", next)
		res = r.navigateLocked(ctx, next)
		res.Redirects = hops + 1
	}
}

// navigateLocked runs one navigation. r.mu must be held.
func (r *Router) navigateLocked(ctx context.Context, raw string) Result {
	loc, err := routepath.ParseNav(raw)
	if err != nil {
		r.logger.Warn("invalid navigation path", "path", raw, "error", err)
		return Result{Outcome: NoMatch, Path: raw, Err: err}
	}
	path, query := loc.Path, loc.Query

	target := r.lookup(path, query)
	if target == nil {
		r.logger.Warn("no route", "path", path)
		return Result{Outcome: NoMatch, Path: path, Err: fmt.Errorf("%w: %s", ErrNoRoute, path)}
	}
	res := Result{Route: target.reg.pattern, Path: path, NotFound: target.reg.notFound}
	t := r.transition(target)

	if cur := r.current; cur != nil && cur.path == path && cur.query == query {
		r.notify(ctx, hooks.PhaseAlready, cur.reg.hooks.Already, t)
		r.notify(ctx, hooks.PhaseAlready, r.global.Already, t)
		res.Outcome = Already
		return res
	}

	if cur := r.current; cur != nil {
		lt := r.transition(cur)
		if ok, err := r.gate(ctx, hooks.PhaseLeave, cur.reg.hooks.Leave, lt); !ok {
			return blocked(res, err)
		}
		if ok, err := r.gate(ctx, hooks.PhaseLeave, r.global.Leave, lt); !ok {
			return blocked(res, err)
		}
	}

	if ok, err := r.gate(ctx, hooks.PhaseBefore, r.global.Before, t); !ok {
		return blocked(res, err)
	}
	if ok, err := r.gate(ctx, hooks.PhaseBefore, target.reg.hooks.Before, t); !ok {
		return blocked(res, err)
	}

	if err := target.reg.handler(ctx, target.match()); err != nil {
		r.logger.Error("route handler failed", "route", target.reg.pattern, "path", path, "error", err)
		res.Outcome = Failed
		res.Err = err
		return res
	}
	r.current = target

	r.notify(ctx, hooks.PhaseAfter, target.reg.hooks.After, t)
	r.notify(ctx, hooks.PhaseAfter, r.global.After, t)

	res.Outcome = Resolved
	return res
}

func validPattern(pattern string) bool {
	if !strings.HasPrefix(pattern, "/") {
		return false
	}
	for _, seg := range routepath.Split(pattern) {
		if seg == "" || seg == ":" || seg == "*" {
			return false
		}
	}
	return true
}

// lookup matches path, falling back to the not-found registration.
func (r *Router) lookup(path, query string) *state {
	params := make(map[string]string)
	if n := r.root.lookup(routepath.Split(path), params); n != nil {
		return &state{reg: n.reg, path: path, query: query, params: params}
	}
	if r.notFound != nil {
		return &state{reg: r.notFound, path: path, query: query}
	}
	return nil
}

func (r *Router) transition(s *state) hooks.Transition {
	return hooks.Transition{
		Route:  s.reg.pattern,
		Path:   s.path,
		Query:  s.query,
		Params: s.params,
		Nav:    r,
	}
}

func (s *state) match() Match {
	return Match{
		Route:    s.reg.pattern,
		Path:     s.path,
		Query:    s.query,
		Params:   s.params,
		NotFound: s.reg.notFound,
	}
}

func blocked(res Result, err error) Result {
	res.Outcome = Blocked
	res.Err = err
	return res
}

// gate runs a gating hook. A nil hook allows. Errors and panics deny.
func (r *Router) gate(ctx context.Context, phase hooks.Phase, g hooks.GateFunc, t hooks.Transition) (ok bool, err error) {
	if g == nil {
		return true, nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = &HookError{Phase: phase, Route: t.Route, Err: fmt.Errorf("panic: %v", p)}
			ok = false
			r.logger.Error("hook panicked", "phase", phase, "route", t.Route, "panic", p)
		}
	}()

	d, gerr := g(ctx, t)
	if gerr != nil {
		r.logger.Warn("hook failed, navigation denied", "phase", phase, "route", t.Route, "path", t.Path, "error", gerr)
		return false, &HookError{Phase: phase, Route: t.Route, Err: gerr}
	}
	if !d.Allowed() {
		r.logger.Debug("navigation denied", "phase", phase, "route", t.Route, "path", t.Path)
		return false, nil
	}
	return true, nil
}

// notify runs a notification hook, logging a panic instead of propagating.
func (r *Router) notify(ctx context.Context, phase hooks.Phase, n hooks.NotifyFunc, t hooks.Transition) {
	if n == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("hook panicked", "phase", phase, "route", t.Route, "panic", p)
		}
	}()
	n(ctx, t)
}
