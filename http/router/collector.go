package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/resolver"
)

// A table holds what every Collector of one route tree shares.
type table struct {
	factory  msg.ResponseFactory
	frozen   atomic.Bool
	ids      func() string
	resolver resolver.Resolver
	root     *Collector
}

func (t *table) mustBeMutable(op string) {
	if t.frozen.Load() {
		panic(fmt.Sprintf("router: %s after the route table was frozen", op))
	}
}

// A Collector registers routes and groups of routes under a shared prefix.
//
// Collectors form a tree: the root belongs to a Router, every other to a RouteGroup.
// Collectors must not be modified once the route table is frozen;
// doing so panics.
type Collector struct {
	prefix     string
	parent     *Collector
	routes     []*Route
	index      map[string]*Route
	groups     []*RouteGroup
	middleware []middleware.Middleware
	strategy   InvocationStrategy
	table      *table
}

func newCollector(prefix string, parent *Collector, strategy InvocationStrategy, t *table) *Collector {
	return &Collector{
		prefix:   prefix,
		parent:   parent,
		index:    make(map[string]*Route),
		strategy: strategy,
		table:    t,
	}
}

// Map registers a route for methods at pattern, handled by handler.
// handler is anything resolver.Parse understands.
//
// Registering the same methods and pattern twice is not checked here;
// compiling the route table fails instead.
func (c *Collector) Map(methods []string, pattern string, handler any) *Route {
	c.table.mustBeMutable("registering a route")

	ms := make([]string, len(methods))
	for i, m := range methods {
		ms[i] = strings.ToUpper(m)
	}

	rt := &Route{
		identifier: c.table.ids(),
		methods:    ms,
		pattern:    pattern,
		handler:    resolver.Parse(handler),
		owner:      c,
	}

	c.routes = append(c.routes, rt)
	c.index[rt.identifier] = rt

	return rt
}

// Get registers a route for GET requests.
func (c *Collector) Get(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodGet}, pattern, handler)
}

// Post registers a route for POST requests.
func (c *Collector) Post(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodPost}, pattern, handler)
}

// Put registers a route for PUT requests.
func (c *Collector) Put(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodPut}, pattern, handler)
}

// Patch registers a route for PATCH requests.
func (c *Collector) Patch(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodPatch}, pattern, handler)
}

// Delete registers a route for DELETE requests.
func (c *Collector) Delete(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodDelete}, pattern, handler)
}

// Options registers a route for OPTIONS requests.
func (c *Collector) Options(pattern string, handler any) *Route {
	return c.Map([]string{http.MethodOptions}, pattern, handler)
}

// Any registers a route for GET, POST, PUT, PATCH, DELETE and OPTIONS.
func (c *Collector) Any(pattern string, handler any) *Route {
	return c.Map([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}, pattern, handler)
}

// Group registers a group of routes under prefix.
// fn registers the group's routes on the group's own Collector before Group returns.
// The group starts out with c's default InvocationStrategy.
func (c *Collector) Group(prefix string, fn func(*Collector)) *RouteGroup {
	c.table.mustBeMutable("registering a group")

	g := &RouteGroup{collector: newCollector(prefix, c, c.strategy, c.table)}
	c.groups = append(c.groups, g)

	if fn != nil {
		fn(g.collector)
	}

	return g
}

// AddMiddleware adds mws to every route registered on c or its groups.
// Middleware runs in the order added, outside the middleware of groups nested in c.
func (c *Collector) AddMiddleware(mws ...middleware.Middleware) *Collector {
	c.table.mustBeMutable("adding middleware")
	c.middleware = append(c.middleware, mws...)
	return c
}

// appendMiddleware layers the middleware of c, then of every ancestor of c, onto d.
// Each layer ends up outside the one before.
func (c *Collector) appendMiddleware(d *middleware.Dispatcher) {
	for i := len(c.middleware) - 1; i >= 0; i-- {
		d.Add(c.middleware[i])
	}

	if c.parent != nil {
		c.parent.appendMiddleware(d)
	}
}

// DefaultStrategy is the InvocationStrategy routes of c without their own run with.
func (c *Collector) DefaultStrategy() InvocationStrategy {
	if c.strategy == nil {
		return RequestResponseStrategy{}
	}

	return c.strategy
}

// SetDefaultStrategy sets the InvocationStrategy routes of c without their own run with.
// Groups already registered keep theirs.
func (c *Collector) SetDefaultStrategy(s InvocationStrategy) *Collector {
	c.table.mustBeMutable("setting the default strategy")
	c.strategy = s
	return c
}

// Pattern is the prefix of c, following the prefixes of every ancestor.
func (c *Collector) Pattern() string {
	if c.parent == nil {
		return c.prefix
	}

	return c.parent.Pattern() + c.prefix
}

// Routes lists every route of c: its own first, in order, then those of each group.
func (c *Collector) Routes() []*Route {
	routes := append([]*Route(nil), c.routes...)
	for _, g := range c.groups {
		routes = append(routes, g.collector.Routes()...)
	}

	return routes
}

// NamedRoute finds the route named name among c and its groups.
//
// Unnamed routes never match, not even the empty name.
// When no route is named name, NamedRoute returns nil
// or, if mustExist, an error wrapping switchback.ErrNotExist.
func (c *Collector) NamedRoute(name string, mustExist bool) (*Route, error) {
	if name != "" {
		if rt := c.find(func(rt *Route) bool { return rt.name == name }); rt != nil {
			return rt, nil
		}
	}

	if mustExist {
		return nil, fmt.Errorf("%w: named route %q", switchback.ErrNotExist, name)
	}

	return nil, nil
}

// RemoveNamedRoute removes the route named name from whichever Collector owns it,
// reporting whether one was found.
// The empty name finds nothing.
func (c *Collector) RemoveNamedRoute(name string) bool {
	c.table.mustBeMutable("removing a route")

	if name == "" {
		return false
	}

	for i, rt := range c.routes {
		if rt.name == name {
			c.routes = append(c.routes[:i:i], c.routes[i+1:]...)
			delete(c.index, rt.identifier)
			return true
		}
	}

	for _, g := range c.groups {
		if g.collector.RemoveNamedRoute(name) {
			return true
		}
	}

	return false
}

// LookupRoute finds the route with identifier among c and its groups.
//
// An identifier that was once handed out but no longer finds a route
// means the route table changed underneath the caller.
// When mustExist, that is an error wrapping switchback.ErrStaleRoute.
func (c *Collector) LookupRoute(identifier string, mustExist bool) (*Route, error) {
	if rt := c.lookup(identifier); rt != nil {
		return rt, nil
	}

	if mustExist {
		return nil, fmt.Errorf("%w: route table looks stale, no route %q", switchback.ErrStaleRoute, identifier)
	}

	return nil, nil
}

func (c *Collector) lookup(identifier string) *Route {
	if rt, ok := c.index[identifier]; ok {
		return rt
	}

	for _, g := range c.groups {
		if rt := g.collector.lookup(identifier); rt != nil {
			return rt
		}
	}

	return nil
}

// find walks c depth first, own routes before groups.
func (c *Collector) find(match func(*Route) bool) *Route {
	for _, rt := range c.routes {
		if match(rt) {
			return rt
		}
	}

	for _, g := range c.groups {
		if rt := g.collector.find(match); rt != nil {
			return rt
		}
	}

	return nil
}
