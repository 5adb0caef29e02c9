package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing(t *testing.T) {
	for _, tc := range []struct {
		name     string
		route    switchback.RouteInfo
		res      *msg.Response
		err      error
		span     string
		status   codes.Code
		recorded int
	}{
		{"Matched", stubRoute{name: "users.show", pattern: "/users/{id}"}, msg.NewResponse(http.StatusOK), nil, "GET /users/{id}", codes.Unset, 0},
		{"Unmatched", nil, nil, &switchback.NotFoundError{}, "GET unmatched", codes.Unset, 1},
		{"Failure", stubRoute{pattern: "/users/{id}"}, nil, errors.New("boom"), "GET /users/{id}", codes.Error, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

			var inner trace.SpanContext
			d := middleware.NewDispatcher(middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
				inner = trace.SpanContextFromContext(r.Context())
				return tc.res, tc.err
			}))
			d.Add(middleware.Tracing(middleware.WithTracerProvider(tp)))

			r := httptest.NewRequest(http.MethodGet, "/users/1", nil)
			if tc.route != nil {
				r = switchback.WithAttribute(r, switchback.RouteKey, tc.route)
			}

			// Act
			_, err := d.Handle(r)

			// Assert
			require.Equal(t, tc.err, err)

			spans := sr.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, tc.span, spans[0].Name())
			require.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
			require.Equal(t, tc.status, spans[0].Status().Code)
			require.Len(t, spans[0].Events(), tc.recorded)
			require.Equal(t, spans[0].SpanContext().SpanID(), inner.SpanID())
			require.Contains(t, spans[0].Attributes(), attribute.String("http.method", http.MethodGet))
		})
	}
}

func TestTracingRouteAttributes(t *testing.T) {
	// Arrange
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	d := middleware.NewDispatcher(middleware.HandlerFunc(func(r *http.Request) (*msg.Response, error) {
		return msg.NewResponse(http.StatusOK), nil
	}))
	d.Add(middleware.Tracing(middleware.WithTracerProvider(tp), middleware.WithTracerName("test")))

	r := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	r = switchback.WithAttribute(r, switchback.RouteKey, stubRoute{name: "users.show", pattern: "/users/{id}"})

	// Act
	_, err := d.Handle(r)

	// Assert
	require.NoError(t, err)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "test", spans[0].InstrumentationScope().Name)
	attrs := spans[0].Attributes()
	require.Contains(t, attrs, attribute.String("http.route", "/users/{id}"))
	require.Contains(t, attrs, attribute.String("switchback.route.id", "route0"))
	require.Contains(t, attrs, attribute.String("switchback.route.name", "users.show"))
	require.Contains(t, attrs, attribute.Int("http.status_code", http.StatusOK))
}
