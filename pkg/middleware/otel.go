package middleware

import (
	"context"
	"fmt"
	"sort"

	"github.com/vango-dev/vnp/pkg/hooks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for vnp applications.
const defaultTracerName = "vnp"

// TraceConfig configures the OpenTelemetry wrapper.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "vnp").
	TracerName string

	// IncludeParams records route parameters as span attributes.
	// May contain user data - disabled by default.
	IncludeParams bool

	// Filter determines which routes to trace.
	// If nil, all routes are traced.
	Filter func(route string) bool

	// AttributeExtractor adds custom attributes for a transition.
	AttributeExtractor func(t hooks.Transition) []attribute.KeyValue

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider

	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry wrapper.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables recording route parameters.
func WithIncludeParams(include bool) TraceOption {
	return func(c *TraceConfig) {
		c.IncludeParams = include
	}
}

// WithRouteFilter sets a filter function for routes.
func WithRouteFilter(filter func(route string) bool) TraceOption {
	return func(c *TraceConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(t hooks.Transition) []attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TraceOption {
	return func(c *TraceConfig) {
		c.Provider = tp
	}
}

// Tracing returns a hooks.Wrapper that runs every hook phase inside a span.
// Hooks receive the span in their context, so downstream calls inherit the
// trace:
//
//	func guard(ctx context.Context, t hooks.Transition) (hooks.Decision, error) {
//	    req, _ := http.NewRequestWithContext(ctx, "GET", sessionURL, nil)
//	    ...
//	}
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main():
//
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TraceOption) hooks.Wrapper {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		config.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(route string, c hooks.Composed) hooks.Composed {
		if config.Filter != nil && !config.Filter(route) {
			return c
		}
		return wrapComposed(c,
			func(phase hooks.Phase, next hooks.GateFunc) hooks.GateFunc {
				return func(ctx context.Context, t hooks.Transition) (hooks.Decision, error) {
					ctx, span := config.start(ctx, route, phase, t)
					defer span.End()

					d, err := next(ctx, t)
					span.SetAttributes(attribute.String("vnp.decision", d.String()))
					if err != nil {
						span.RecordError(err)
						span.SetStatus(codes.Error, err.Error())
					} else {
						span.SetStatus(codes.Ok, "")
					}
					return d, err
				}
			},
			func(phase hooks.Phase, next hooks.NotifyFunc) hooks.NotifyFunc {
				return func(ctx context.Context, t hooks.Transition) {
					ctx, span := config.start(ctx, route, phase, t)
					defer span.End()
					next(ctx, t)
				}
			},
		)
	}
}

func (c *TraceConfig) start(ctx context.Context, route string, phase hooks.Phase, t hooks.Transition) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("vnp.route", route),
		attribute.String("vnp.path", t.Path),
		attribute.String("vnp.phase", string(phase)),
	}
	if t.Query != "" {
		attrs = append(attrs, attribute.String("vnp.query", t.Query))
	}
	if c.IncludeParams && len(t.Params) > 0 {
		keys := make([]string, 0, len(t.Params))
		for k := range t.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs = append(attrs, attribute.String("vnp.param."+k, t.Params[k]))
		}
	}
	if c.AttributeExtractor != nil {
		attrs = append(attrs, c.AttributeExtractor(t)...)
	}

	return c.tracer.Start(ctx, spanName(route, phase),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// spanName formats "vnp.<phase> <route>".
func spanName(route string, phase hooks.Phase) string {
	return fmt.Sprintf("vnp.%s %s", phase, route)
}
