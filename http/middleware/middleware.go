package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/msg"
)

// A Handler handles a request, producing a response or an error.
type Handler interface {
	Handle(r *http.Request) (*msg.Response, error)
}

// A HandlerFunc adapts a function to a Handler.
type HandlerFunc func(r *http.Request) (*msg.Response, error)

func (fn HandlerFunc) Handle(r *http.Request) (*msg.Response, error) { return fn(r) }

// A Middleware processes a request before and after handing it to next.
//
// A Middleware may also answer without calling next at all.
type Middleware interface {
	Process(r *http.Request, next Handler) (*msg.Response, error)
}

// A Func adapts a function to a Middleware.
type Func func(r *http.Request, next Handler) (*msg.Response, error)

func (fn Func) Process(r *http.Request, next Handler) (*msg.Response, error) { return fn(r, next) }

// Noop hands the request to next untouched.
var Noop Middleware = Func(func(r *http.Request, next Handler) (*msg.Response, error) {
	return next.Handle(r)
})

// An Adapter allows chaining net/http middlewares together
// around a router serving as an [http.Handler].
type Adapter func(http.Handler) http.Handler

// NoopAdapter returns the handler unchanged.
func NoopAdapter(h http.Handler) http.Handler { return h }

// Chain glues the set of adapters to the handler.
// The first adapter is the outermost.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}
