package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vnp/pkg/hooks"
	"github.com/vango-dev/vnp/pkg/router"
)

// MetricsConfig configures the Prometheus instruments.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vnp").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for hook and render durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus instruments.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vnp",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation, hook, render and session instruments.
// Register it once per registry.
type Metrics struct {
	navigations    *prometheus.CounterVec
	redirects      prometheus.Counter
	gateDecisions  *prometheus.CounterVec
	hookDuration   *prometheus.HistogramVec
	hookErrors     *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// NewMetrics creates and registers the instruments.
//
// Metrics collected:
//   - vnp_navigations_total: navigations by outcome
//   - vnp_redirects_total: hook redirects followed
//   - vnp_gate_decisions_total: before/leave results by route, phase and decision
//   - vnp_hook_duration_seconds: composed hook duration by route and phase
//   - vnp_hook_errors_total: failing gates by route, phase and error type
//   - vnp_renders_total: render transitions by result
//   - vnp_render_duration_seconds: time from Render to commit
//   - vnp_active_sessions: open websocket sessions
//   - vnp_websocket_errors_total: websocket errors by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		redirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of redirects requested by hooks",
			ConstLabels: config.ConstLabels,
		}),

		gateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "gate_decisions_total",
			Help:        "Total number of gating hook decisions",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "phase", "decision"}),

		hookDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hook_duration_seconds",
			Help:        "Composed hook duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route", "phase"}),

		hookErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hook_errors_total",
			Help:        "Total number of failing gating hooks",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "phase", "error_type"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render transitions by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Time from render request to content swap in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Wrapper returns a hooks.Wrapper that times every phase and counts gate
// decisions.
func (m *Metrics) Wrapper() hooks.Wrapper {
	return func(route string, c hooks.Composed) hooks.Composed {
		return wrapComposed(c,
			func(phase hooks.Phase, next hooks.GateFunc) hooks.GateFunc {
				return m.gate(route, phase, next)
			},
			func(phase hooks.Phase, next hooks.NotifyFunc) hooks.NotifyFunc {
				return m.notify(route, phase, next)
			},
		)
	}
}

func (m *Metrics) gate(route string, phase hooks.Phase, next hooks.GateFunc) hooks.GateFunc {
	duration := m.hookDuration.WithLabelValues(route, string(phase))
	return func(ctx context.Context, t hooks.Transition) (hooks.Decision, error) {
		start := time.Now()
		d, err := next(ctx, t)
		duration.Observe(time.Since(start).Seconds())

		decision := d.String()
		if err != nil {
			decision = "error"
			m.hookErrors.WithLabelValues(route, string(phase), categorizeError(err)).Inc()
		}
		m.gateDecisions.WithLabelValues(route, string(phase), decision).Inc()
		return d, err
	}
}

func (m *Metrics) notify(route string, phase hooks.Phase, next hooks.NotifyFunc) hooks.NotifyFunc {
	duration := m.hookDuration.WithLabelValues(route, string(phase))
	return func(ctx context.Context, t hooks.Transition) {
		start := time.Now()
		defer func() {
			duration.Observe(time.Since(start).Seconds())
		}()
		next(ctx, t)
	}
}

// categorizeError keeps error labels low-cardinality.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, router.ErrTooManyRedirects):
		return "redirect_loop"
	default:
		return "internal"
	}
}

// RecordNavigation records the result of a router navigation.
func (m *Metrics) RecordNavigation(res router.Result) {
	m.navigations.WithLabelValues(res.Outcome.String()).Inc()
	if res.Redirects > 0 {
		m.redirects.Add(float64(res.Redirects))
	}
}

// RenderCommitted implements render.Observer.
func (m *Metrics) RenderCommitted(elapsed time.Duration) {
	m.renders.WithLabelValues("committed").Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}

// RenderSuperseded implements render.Observer.
func (m *Metrics) RenderSuperseded() {
	m.renders.WithLabelValues("superseded").Inc()
}

// RenderMissing implements render.Observer.
func (m *Metrics) RenderMissing() {
	m.renders.WithLabelValues("missing").Inc()
}

// SessionOpened records a new websocket session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records a closed websocket session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
