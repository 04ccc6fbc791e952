package render

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/vango-dev/vnp/pkg/vdom"
)

// DefaultDelay is the debounce window between the leaving state and the
// content swap.
const DefaultDelay = 200 * time.Millisecond

// ErrMissingComponent is returned when Render is called without a component.
var ErrMissingComponent = errors.New("render: missing component")

// Display is the surface a Scheduler drives.
type Display interface {
	// SetLeaving toggles the visual leaving state.
	SetLeaving(leaving bool)

	// Swap replaces the displayed content.
	Swap(node *vdom.VNode)
}

// Observer is notified about transition outcomes.
type Observer interface {
	RenderCommitted(elapsed time.Duration)
	RenderSuperseded()
	RenderMissing()
}

// Scheduler runs debounced, cancelable transitions on a Display.
type Scheduler struct {
	mu       sync.Mutex
	display  Display
	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	logger   *slog.Logger
	observer Observer
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDelay sets the debounce window. Zero commits on the next timer tick.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers an observer for transition outcomes.
func WithObserver(o Observer) SchedulerOption {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// NewScheduler creates a scheduler for display.
func NewScheduler(display Display, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		display: display,
		delay:   DefaultDelay,
		logger:  slog.Default().With("component", "render"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render starts a transition to c. A missing component is logged and
// returns ErrMissingComponent without touching the display.
func (s *Scheduler) Render(c vdom.Component) error {
	if isNil(c) {
		s.logger.Error("component not found, render aborted")
		if s.observer != nil {
			s.observer.RenderMissing()
		}
		return ErrMissingComponent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelLocked() && s.observer != nil {
		s.observer.RenderSuperseded()
	}

	s.gen++
	gen := s.gen
	start := time.Now()

	s.display.SetLeaving(true)
	s.timer = time.AfterFunc(s.delay, func() {
		s.commit(gen, c, start)
	})
	return nil
}

// commit swaps content if no newer transition has started.
func (s *Scheduler) commit(gen uint64, c vdom.Component, start time.Time) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	node := c.Render()
	if node == nil {
		s.display.SetLeaving(false)
		s.mu.Unlock()
		s.logger.Error("component rendered nothing, content kept")
		if s.observer != nil {
			s.observer.RenderMissing()
		}
		return
	}

	s.display.Swap(node)
	s.display.SetLeaving(false)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.RenderCommitted(time.Since(start))
	}
}

// Stop cancels the pending transition, if any. The leaving state is left
// as is.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Pending reports whether a transition is waiting to commit.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// cancelLocked invalidates the pending transition and reports whether there
// was one. s.mu must be held.
func (s *Scheduler) cancelLocked() bool {
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	s.gen++
	return true
}

// isNil reports whether c is nil or wraps a nil pointer or func.
func isNil(c vdom.Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}
