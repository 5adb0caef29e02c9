package router

import "github.com/xy-planning-network/switchback/http/middleware"

// A RouteGroup is the handle on a group of routes registered with Collector.Group.
type RouteGroup struct {
	collector *Collector
}

// AddMiddleware adds mws to every route of g.
func (g *RouteGroup) AddMiddleware(mws ...middleware.Middleware) *RouteGroup {
	g.collector.AddMiddleware(mws...)
	return g
}

// Collector is the Collector routes of g are registered on.
func (g *RouteGroup) Collector() *Collector { return g.collector }

// Pattern is the full prefix of g.
func (g *RouteGroup) Pattern() string { return g.collector.Pattern() }
