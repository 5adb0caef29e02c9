package router

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
)

// An InvocationStrategy calls a resolved handler for a matched route.
//
// Strategies return whatever the handler returns, untouched.
// A handler of a shape the strategy cannot call is an error wrapping switchback.ErrUnresolvable.
type InvocationStrategy interface {
	Invoke(callable any, r *http.Request, res *msg.Response, args Arguments) (*msg.Response, error)
}

// A HandlerAware InvocationStrategy knows how to call a middleware.Handler itself.
// A route whose handler resolves to a middleware.Handler under a strategy
// that is not HandlerAware runs under HandlerStrategy instead.
type HandlerAware interface {
	InvocationStrategy
	AcceptsHandlers()
}

// An ArgsFunc is a handler receiving the route's arguments by name.
type ArgsFunc func(r *http.Request, res *msg.Response, args map[string]string) (*msg.Response, error)

// A VariadicFunc is a handler receiving the route's argument values in order.
type VariadicFunc func(r *http.Request, res *msg.Response, args ...string) (*msg.Response, error)

var (
	_ HandlerAware       = RequestStrategy{}
	_ HandlerAware       = HandlerStrategy{}
	_ InvocationStrategy = RequestResponseStrategy{}
	_ InvocationStrategy = RequestResponseArgsStrategy{}
)

// RequestStrategy calls handlers taking only the request:
// a middleware.Handler or a func(*http.Request) (*msg.Response, error).
// The response built for the route is not passed on.
//
// With AppendArguments, each argument is stored on the request first;
// see ArgumentAttribute.
type RequestStrategy struct {
	AppendArguments bool
}

func (RequestStrategy) AcceptsHandlers() {}

func (s RequestStrategy) Invoke(callable any, r *http.Request, _ *msg.Response, args Arguments) (*msg.Response, error) {
	if s.AppendArguments {
		r = withArgumentAttributes(r, args)
	}

	switch fn := callable.(type) {
	case middleware.Handler:
		return fn.Handle(r)
	case func(*http.Request) (*msg.Response, error):
		return fn(r)
	}

	return nil, unresolvable(callable, "func(*http.Request) (*msg.Response, error)")
}

// RequestResponseStrategy calls an ArgsFunc,
// storing each argument on the request first; see ArgumentAttribute.
// It is the default InvocationStrategy.
type RequestResponseStrategy struct{}

func (RequestResponseStrategy) Invoke(callable any, r *http.Request, res *msg.Response, args Arguments) (*msg.Response, error) {
	r = withArgumentAttributes(r, args)

	switch fn := callable.(type) {
	case ArgsFunc:
		return fn(r, res, args.Map())
	case func(*http.Request, *msg.Response, map[string]string) (*msg.Response, error):
		return fn(r, res, args.Map())
	}

	return nil, unresolvable(callable, "ArgsFunc")
}

// RequestResponseArgsStrategy calls a VariadicFunc with the argument values in order.
// The request is passed on untouched.
type RequestResponseArgsStrategy struct{}

func (RequestResponseArgsStrategy) Invoke(callable any, r *http.Request, res *msg.Response, args Arguments) (*msg.Response, error) {
	switch fn := callable.(type) {
	case VariadicFunc:
		return fn(r, res, args.Values()...)
	case func(*http.Request, *msg.Response, ...string) (*msg.Response, error):
		return fn(r, res, args.Values()...)
	}

	return nil, unresolvable(callable, "VariadicFunc")
}

// HandlerStrategy hands the request to a middleware.Handler,
// ignoring the route's response and arguments.
type HandlerStrategy struct{}

func (HandlerStrategy) AcceptsHandlers() {}

func (HandlerStrategy) Invoke(callable any, r *http.Request, _ *msg.Response, _ Arguments) (*msg.Response, error) {
	h, ok := callable.(middleware.Handler)
	if !ok {
		return nil, unresolvable(callable, "middleware.Handler")
	}

	return h.Handle(r)
}

// ArgumentAttribute is the request attribute an argument named name is stored under.
// The "arg:" prefix keeps arguments apart from the router's own keys.
func ArgumentAttribute(name string) switchback.Key {
	return switchback.Key("arg:" + name)
}

func withArgumentAttributes(r *http.Request, args Arguments) *http.Request {
	for _, arg := range args {
		r = switchback.WithAttribute(r, ArgumentAttribute(arg.Name), arg.Value)
	}

	return r
}

func unresolvable(callable any, want string) error {
	return fmt.Errorf("%w: %T is not a %s", switchback.ErrUnresolvable, callable, want)
}
