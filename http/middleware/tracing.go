package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/xy-planning-network/switchback"

// TracingConfig configures the Tracing middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// Provider supplies the tracer.
	// Default: otel.GetTracerProvider()
	Provider trace.TracerProvider
}

// TracingOption configures the Tracing middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the provider the tracer comes from.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// Tracing starts a span for every request passing through it.
// The span's context is handed down the chain on the request.
//
// Spans are named after the method and matched route pattern.
// Like Prometheus, Tracing needs to sit inside the router's RoutingMiddleware
// to see the route when added router-wide.
// Errors are recorded on the span; 500-class outcomes mark the span as failed.
func Tracing(opts ...TracingOption) Middleware {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}

	tracer := config.Provider.Tracer(config.TracerName)

	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		attrs := []attribute.KeyValue{
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		}

		name := r.Method + " " + unmatchedRoute
		if info, ok := switchback.RouteFromRequest(r); ok {
			name = r.Method + " " + info.Pattern()
			attrs = append(attrs,
				attribute.String("http.route", info.Pattern()),
				attribute.String("switchback.route.id", info.Identifier()),
			)
			if info.Name() != "" {
				attrs = append(attrs, attribute.String("switchback.route.name", info.Name()))
			}
		}

		ctx, span := tracer.Start(r.Context(), name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		res, err := next.Handle(r.WithContext(ctx))

		status := http.StatusOK
		switch {
		case err != nil:
			status = switchback.StatusCode(err)
			span.RecordError(err)
		case res != nil && res.StatusCode != 0:
			status = res.StatusCode
		}

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		return res, err
	})
}
