package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
)

// unmatchedRoute labels requests no route was matched for.
const unmatchedRoute = "unmatched"

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "switchback").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
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

type metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	routingFailures *prometheus.CounterVec
}

func newMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "requests_total",
			Help:      "Total number of requests dispatched, by route and status",
		}, []string{"method", "route", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request dispatch duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"method", "route"}),

		routingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "routing_failures_total",
			Help:      "Total number of requests no route could serve, by kind",
		}, []string{"kind"}),
	}
}

// Prometheus collects metrics on every request passing through it:
//   - switchback_router_requests_total: Counter of requests by method, route, and status
//   - switchback_router_request_duration_seconds: Histogram of dispatch duration by method and route
//   - switchback_router_routing_failures_total: Counter of not found and method not allowed outcomes
//
// Routes are labeled by name, falling back to their pattern.
// Place Prometheus inside the router's RoutingMiddleware for route labels
// on router-wide metrics; on a group or route it sees the route already.
//
// The metrics register with the registry once per call to Prometheus;
// calling it twice against the same registry panics.
func Prometheus(opts ...MetricsOption) Middleware {
	config := MetricsConfig{
		Namespace: "switchback",
		Subsystem: "router",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	m := newMetrics(config)

	return Func(func(r *http.Request, next Handler) (*msg.Response, error) {
		start := time.Now()
		res, err := next.Handle(r)

		route := routeLabel(r)
		status := http.StatusOK
		switch {
		case err != nil:
			status = switchback.StatusCode(err)
		case res != nil && res.StatusCode != 0:
			status = res.StatusCode
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

		switch {
		case errors.Is(err, switchback.ErrNotFound):
			m.routingFailures.WithLabelValues("not_found").Inc()
		case errors.Is(err, switchback.ErrMethodNotAllowed):
			m.routingFailures.WithLabelValues("method_not_allowed").Inc()
		}

		return res, err
	})
}

// routeLabel names the route r matched, if any.
func routeLabel(r *http.Request) string {
	info, ok := switchback.RouteFromRequest(r)
	if !ok {
		return unmatchedRoute
	}

	if name := info.Name(); name != "" {
		return name
	}

	return info.Pattern()
}
