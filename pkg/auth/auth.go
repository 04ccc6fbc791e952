package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/vnp/pkg/hooks"
)

// ErrUnauthorized is returned when authentication is required but not present.
var ErrUnauthorized = errors.New("unauthorized: authentication required")

// ErrNotReady is returned by WaitReady when the readiness signal does not
// arrive in time.
var ErrNotReady = errors.New("auth: session service not ready")

// Service answers whether the user behind ctx is signed in.
type Service interface {
	IsSignedIn(ctx context.Context) (bool, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(ctx context.Context) (bool, error)

// IsSignedIn implements Service.
func (f ServiceFunc) IsSignedIn(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Readiness exposes a channel closed once the session service can answer.
type Readiness interface {
	Ready() <-chan struct{}
}

// Signal is a Readiness raised once by calling Fire.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// NewSignal creates an unraised signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Fire raises the signal. Later calls do nothing.
func (s *Signal) Fire() {
	s.once.Do(func() { close(s.ch) })
}

// Ready implements Readiness.
func (s *Signal) Ready() <-chan struct{} {
	return s.ch
}

// WaitReady waits for r with an upper bound. A nil Readiness is ready.
func WaitReady(ctx context.Context, r Readiness, timeout time.Duration) error {
	if r == nil {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	select {
	case <-r.Ready():
		return nil
	case <-ctx.Done():
		return errors.Join(ErrNotReady, ctx.Err())
	}
}

// GuardOption configures Guard.
type GuardOption func(*guard)

type guard struct {
	logger *slog.Logger
}

// WithGuardLogger sets the logger used for failed checks.
func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(g *guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// Guard returns a before hook that allows signed-in users. Anyone else is
// redirected to redirect and denied. A failing check denies and its error
// is returned.
func Guard(svc Service, redirect string, opts ...GuardOption) hooks.GateFunc {
	g := &guard{logger: slog.Default().With("component", "auth")}
	for _, opt := range opts {
		opt(g)
	}

	return func(ctx context.Context, t hooks.Transition) (hooks.Decision, error) {
		ok, err := svc.IsSignedIn(ctx)
		if err != nil {
			g.logger.Warn("sign-in check failed", "path", t.Path, "error", err)
			t.Redirect(redirect)
			return hooks.Deny, err
		}
		if !ok {
			g.logger.Debug("not signed in, redirecting", "path", t.Path, "redirect", redirect)
			t.Redirect(redirect)
			return hooks.Deny, nil
		}
		return hooks.Allow, nil
	}
}
