package router

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/resolver"
	"github.com/xy-planning-network/switchback/logger"
)

var (
	_ http.Handler       = (*Router)(nil)
	_ middleware.Handler = (*Router)(nil)
)

// A Router matches requests against the routes registered on it
// and runs them through the middleware registered around them.
//
// Routes and middleware are registered up front.
// The route table freezes on the first request, or an explicit call to Freeze;
// from then on the Router is safe for concurrent use and any further registration panics.
type Router struct {
	*Collector

	basePath   string
	builder    MatcherBuilder
	logger     logger.Logger
	middleware []middleware.Middleware
	table      *table

	freeze    sync.Once
	freezeErr error
	handler   *RouteHandler
	top       *middleware.Dispatcher
}

// New constructs a *Router.
//
// Unless configured otherwise, handlers resolve through an empty *resolver.Registry,
// responses come from a msg.Factory, routes are identified by UUIDs,
// run under RequestResponseStrategy and are matched by a MuxMatcher.
func New(opts ...Option) *Router {
	t := &table{
		factory:  msg.Factory{},
		ids:      UUIDs,
		resolver: resolver.NewRegistry(),
	}

	rt := &Router{
		builder: BuildMuxMatcher,
		table:   t,
	}
	rt.Collector = newCollector("", nil, RequestResponseStrategy{}, t)
	t.root = rt.Collector

	for _, opt := range opts {
		opt(rt)
	}

	if rt.logger == nil {
		rt.logger = logger.New()
	}

	return rt
}

// AddMiddleware adds mws around routing itself, so they run for every request,
// including those no route matches.
// Middleware runs in the order added.
//
// Use Collector.AddMiddleware on the root Collector
// for middleware wrapping matched routes only.
func (rt *Router) AddMiddleware(mws ...middleware.Middleware) *Router {
	rt.table.mustBeMutable("adding router middleware")
	rt.middleware = append(rt.middleware, mws...)
	return rt
}

// BasePath is the path every route is mounted under.
func (rt *Router) BasePath() string { return rt.basePath }

// SetBasePath mounts every route under path.
func (rt *Router) SetBasePath(path string) *Router {
	rt.table.mustBeMutable("setting the base path")
	rt.basePath = path
	return rt
}

// RoutingMiddleware matches requests as they pass through it,
// so middleware added after it sees the matched route;
// see switchback.RouteFromRequest.
// Without it, matching happens after every Router middleware ran.
func (rt *Router) RoutingMiddleware() middleware.Middleware {
	return middleware.Func(func(r *http.Request, next middleware.Handler) (*msg.Response, error) {
		r, err := rt.handler.PerformRouting(r)
		if err != nil {
			return nil, err
		}

		return next.Handle(r)
	})
}

// Freeze compiles the route table and composes the middleware of every route.
// Freeze runs once; later calls report the outcome of the first.
func (rt *Router) Freeze() error {
	rt.freeze.Do(func() { rt.freezeErr = rt.compile() })
	return rt.freezeErr
}

func (rt *Router) compile() error {
	rt.table.frozen.Store(true)

	routes := rt.Routes()
	defs := make([]Definition, len(routes))
	for i, route := range routes {
		defs[i] = Definition{
			Identifier: route.Identifier(),
			Methods:    route.Methods(),
			Pattern:    rt.basePath + route.Pattern(),
		}
	}

	matcher, err := rt.builder(defs)
	if err != nil {
		return fmt.Errorf("compiling route table: %w", err)
	}

	for _, route := range routes {
		route.compose()
	}

	rt.handler = NewRouteHandler(matcher, rt.Collector, rt.basePath)
	rt.top = middleware.NewDispatcher(rt.handler)
	for i := len(rt.middleware) - 1; i >= 0; i-- {
		rt.top.Add(rt.middleware[i])
	}

	rt.logger.Debug("route table frozen", &logger.LogContext{
		Data: map[string]any{"routes": len(routes), "base_path": rt.basePath},
	})

	return nil
}

// Handle runs r through the Router's middleware and the route it matches.
// Responses to HEAD requests are stripped of their body.
func (rt *Router) Handle(r *http.Request) (*msg.Response, error) {
	if err := rt.Freeze(); err != nil {
		return nil, err
	}

	res, err := rt.top.Handle(r)
	if err != nil {
		return nil, err
	}

	if r.Method == http.MethodHead && res != nil {
		res = res.WithBody(msg.NewStream(nil))
	}

	return res, nil
}

// ServeHTTP handles r and writes the response onto w.
// Errors no middleware handled are rendered with middleware.ErrorResponse.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := rt.Handle(r)
	if err != nil {
		res = middleware.ErrorResponse(rt.table.factory, err)
		if res.StatusCode >= http.StatusInternalServerError {
			lc := &logger.LogContext{Error: err, Request: r}
			if info, ok := switchback.RouteFromRequest(r); ok {
				lc.Route = info
			}
			rt.logger.Error("unhandled error", lc)
		}

		if r.Method == http.MethodHead {
			res = res.WithBody(msg.NewStream(nil))
		}
	}

	if res == nil {
		res = rt.table.factory.CreateResponse(http.StatusNoContent)
	}

	if err := res.Emit(w); err != nil {
		rt.logger.Warn(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}

// RelativeURLFor builds the path of the route named name; see RouteParser.RelativeURLFor.
func (rt *Router) RelativeURLFor(name string, data map[string]string, query url.Values) (string, error) {
	return NewRouteParser(rt.Collector, rt.basePath).RelativeURLFor(name, data, query)
}

// URLFor builds the path of the route named name, prefixed with the base path.
func (rt *Router) URLFor(name string, data map[string]string, query url.Values) (string, error) {
	return NewRouteParser(rt.Collector, rt.basePath).URLFor(name, data, query)
}

// FullURLFor builds the URL of the route named name on the host of base.
func (rt *Router) FullURLFor(base *url.URL, name string, data map[string]string, query url.Values) (string, error) {
	return NewRouteParser(rt.Collector, rt.basePath).FullURLFor(base, name, data, query)
}
