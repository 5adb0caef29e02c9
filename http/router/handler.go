package router

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/msg"
)

// A RouteHandler matches requests against a route table and runs the matched route.
type RouteHandler struct {
	basePath  string
	collector *Collector
	matcher   PathMatcher
}

// NewRouteHandler constructs a *RouteHandler matching with m
// and looking routes up in c.
func NewRouteHandler(m PathMatcher, c *Collector, basePath string) *RouteHandler {
	return &RouteHandler{basePath: basePath, collector: c, matcher: m}
}

// PerformRouting matches r, returning a copy of r carrying
// the *RoutingResults, the matched *Route and the Arguments it runs with.
//
// A request matching no route errors with a *switchback.NotFoundError;
// one matching only under other methods with a *switchback.MethodNotAllowedError.
func (h *RouteHandler) PerformRouting(r *http.Request) (*http.Request, error) {
	path, err := url.PathUnescape(r.URL.EscapedPath())
	if err != nil {
		path = r.URL.Path
	}
	path = leadingSlash(path)

	m := h.matcher.Dispatch(r.Method, path)
	if err := m.Status.Valid(); err != nil {
		return nil, fmt.Errorf("%w: matcher reported %s for %s %s", switchback.ErrInvariant, err, r.Method, path)
	}

	switch m.Status {
	case Found:
		results := NewRoutingResults(r.Method, path, m)
		route, err := h.collector.LookupRoute(m.Identifier, true)
		if err != nil {
			return nil, err
		}

		r = switchback.WithAttribute(r, switchback.RoutingResultsKey, results)
		r = switchback.WithAttribute(r, switchback.RouteKey, route)
		r = switchback.WithAttribute(r, switchback.RouteArgumentsKey, route.Prepare(results.Arguments(false)))
		return r, nil

	case MethodNotAllowed:
		return nil, &switchback.MethodNotAllowedError{Request: r, Allowed: h.matcher.AllowedMethods(path)}

	default:
		return nil, &switchback.NotFoundError{Request: r}
	}
}

// Handle routes r, unless that already happened, and runs the matched route.
func (h *RouteHandler) Handle(r *http.Request) (*msg.Response, error) {
	if _, ok := ResultsFromRequest(r); !ok {
		var err error
		if r, err = h.PerformRouting(r); err != nil {
			return nil, err
		}
	}

	r = switchback.WithAttribute(r, switchback.BasePathKey, h.basePath)

	route, ok := switchback.Attribute(r, switchback.RouteKey).(*Route)
	if !ok {
		return nil, fmt.Errorf("%w: routed request carries no route", switchback.ErrInvariant)
	}

	return route.Run(r)
}
