package router

import (
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/resolver"
	"github.com/xy-planning-network/switchback/logger"
)

// An Option configures a *Router.
type Option func(*Router)

// WithBasePath mounts every route under path.
func WithBasePath(path string) Option {
	return func(rt *Router) {
		rt.basePath = path
	}
}

// WithDefaultStrategy sets the InvocationStrategy routes run with unless they set their own.
func WithDefaultStrategy(s InvocationStrategy) Option {
	return func(rt *Router) {
		if s != nil {
			rt.Collector.strategy = s
		}
	}
}

// WithIdentifiers sets where route identifiers come from, e.g. Sequence("route").
func WithIdentifiers(ids func() string) Option {
	return func(rt *Router) {
		if ids != nil {
			rt.table.ids = ids
		}
	}
}

// WithLogger sets the logger.Logger the Router logs with.
func WithLogger(ls logger.Logger) Option {
	return func(rt *Router) {
		rt.logger = ls
	}
}

// WithMatcher sets how the route table compiles.
func WithMatcher(b MatcherBuilder) Option {
	return func(rt *Router) {
		if b != nil {
			rt.builder = b
		}
	}
}

// WithResolver sets what resolves route handlers.
func WithResolver(r resolver.Resolver) Option {
	return func(rt *Router) {
		if r != nil {
			rt.table.resolver = r
		}
	}
}

// WithResponseFactory sets what builds the responses handed to route handlers.
func WithResponseFactory(f msg.ResponseFactory) Option {
	return func(rt *Router) {
		if f != nil {
			rt.table.factory = f
		}
	}
}
