package switchback

import (
	"context"
	"net/http"
)

type Key string

const (
	// BasePathKey stashes the base path the router was configured with.
	BasePathKey Key = "BasePathKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouteKey stashes the route matched for an HTTP request.
	RouteKey Key = "RouteKey"

	// RouteArgumentsKey stashes the arguments a matched route runs with.
	RouteArgumentsKey Key = "RouteArgumentsKey"

	// RoutingResultsKey stashes the outcome of matching an HTTP request.
	RoutingResultsKey Key = "RoutingResultsKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}

// A RouteInfo describes a registered route
// without exposing how it is dispatched.
type RouteInfo interface {
	Identifier() string
	Methods() []string
	Name() string
	Pattern() string
}

// WithAttribute returns a shallow copy of r
// whose context carries val under key.
func WithAttribute(r *http.Request, key Key, val any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, val))
}

// Attribute retrieves the value stored under key in r's context or nil.
func Attribute(r *http.Request, key Key) any {
	return r.Context().Value(key)
}

// RouteFromRequest retrieves the [RouteInfo] a router matched r against.
func RouteFromRequest(r *http.Request) (RouteInfo, bool) {
	info, ok := Attribute(r, RouteKey).(RouteInfo)
	return info, ok
}
