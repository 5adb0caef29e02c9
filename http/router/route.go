package router

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/resolver"
)

var (
	_ switchback.RouteInfo = (*Route)(nil)
	_ middleware.Handler   = (*Route)(nil)
)

// A Route binds methods and a pattern to a handler.
//
// Once composed, by the route table freezing or a first call to Run,
// a Route no longer changes and is safe for concurrent use.
// Changing it after that panics.
type Route struct {
	identifier string
	methods    []string
	pattern    string
	name       string
	handler    resolver.Descriptor
	saved      Arguments
	middleware []middleware.Middleware
	strategy   InvocationStrategy
	owner      *Collector

	once     sync.Once
	composed atomic.Bool
	chain    middleware.Handler
}

func (rt *Route) mustBeMutable(op string) {
	rt.owner.table.mustBeMutable(op)
	if rt.composed.Load() {
		panic(fmt.Sprintf("router: %s after route %s was composed", op, rt.identifier))
	}
}

// Identifier is unique to rt for the lifetime of its route table.
func (rt *Route) Identifier() string { return rt.identifier }

func (rt *Route) Methods() []string { return append([]string(nil), rt.methods...) }

// Pattern is the full pattern of rt, prefixed by those of the groups holding it.
func (rt *Route) Pattern() string { return rt.owner.Pattern() + rt.pattern }

func (rt *Route) Name() string { return rt.name }

// SetName names rt.
// Names are unique across a route tree; reusing one panics.
// The empty name clears rt's name.
func (rt *Route) SetName(name string) *Route {
	rt.mustBeMutable("naming a route")

	if name == "" {
		rt.name = ""
		return rt
	}

	if other, _ := rt.owner.table.root.NamedRoute(name, false); other != nil && other != rt {
		panic(fmt.Sprintf("router: route name %q already used by %s", name, other.Pattern()))
	}

	rt.name = name
	return rt
}

// Handler describes what rt resolves to when run.
func (rt *Route) Handler() resolver.Descriptor { return rt.handler }

// SetArgument sets a default argument, which path arguments of the same name override.
func (rt *Route) SetArgument(name, value string) *Route {
	rt.mustBeMutable("setting a route argument")
	rt.saved = rt.saved.With(name, value)
	return rt
}

// SetArguments replaces every default argument of rt.
func (rt *Route) SetArguments(args Arguments) *Route {
	rt.mustBeMutable("setting route arguments")
	rt.saved = append(Arguments(nil), args...)
	return rt
}

// Arguments lists the default arguments of rt.
func (rt *Route) Arguments() Arguments { return append(Arguments(nil), rt.saved...) }

// AddMiddleware adds mws to rt, inside the middleware of every group holding rt.
// Middleware runs in the order added.
func (rt *Route) AddMiddleware(mws ...middleware.Middleware) *Route {
	rt.mustBeMutable("adding route middleware")
	rt.middleware = append(rt.middleware, mws...)
	return rt
}

// SetStrategy overrides the InvocationStrategy rt inherits from its Collector.
func (rt *Route) SetStrategy(s InvocationStrategy) *Route {
	rt.mustBeMutable("setting a route strategy")
	rt.strategy = s
	return rt
}

// Strategy is the InvocationStrategy rt runs with.
func (rt *Route) Strategy() InvocationStrategy {
	if rt.strategy != nil {
		return rt.strategy
	}

	return rt.owner.DefaultStrategy()
}

// Prepare merges path arguments over the default arguments of rt,
// returning what one dispatch of rt runs with.
// rt itself is left untouched.
func (rt *Route) Prepare(path Arguments) Arguments {
	return rt.saved.Merge(path)
}

// Run handles r through every middleware wrapping rt:
// those of the root Collector outermost, then of each nested group,
// then of rt itself, and finally rt's handler.
//
// The chain is composed on first use and reused after.
func (rt *Route) Run(r *http.Request) (*msg.Response, error) {
	rt.compose()
	return rt.chain.Handle(r)
}

func (rt *Route) compose() {
	rt.once.Do(func() {
		inner := middleware.NewDispatcher(middleware.HandlerFunc(rt.Handle))
		for i := len(rt.middleware) - 1; i >= 0; i-- {
			inner.Add(rt.middleware[i])
		}

		outer := new(middleware.Dispatcher)
		outer.Seed(inner)
		rt.owner.appendMiddleware(outer)

		rt.chain = outer
		rt.composed.Store(true)
	})
}

// Handle resolves the handler of rt and invokes it, bypassing any middleware.
//
// A handler resolving to a middleware.Handler runs under HandlerStrategy
// unless rt's strategy is HandlerAware.
// The handler receives the arguments a router stored on r
// or, outside a router, the default arguments of rt.
func (rt *Route) Handle(r *http.Request) (*msg.Response, error) {
	t := rt.owner.table

	callable, err := t.resolver.Resolve(rt.handler)
	if err != nil {
		if !errors.Is(err, switchback.ErrUnresolvable) {
			err = fmt.Errorf("%w: %s", switchback.ErrUnresolvable, err)
		}
		return nil, err
	}

	strategy := rt.Strategy()
	if _, ok := callable.(middleware.Handler); ok {
		if _, aware := strategy.(HandlerAware); !aware {
			strategy = HandlerStrategy{}
		}
	}

	args, ok := switchback.Attribute(r, switchback.RouteArgumentsKey).(Arguments)
	if !ok {
		args = rt.saved
	}

	return strategy.Invoke(callable, r, t.factory.CreateResponse(http.StatusOK), args)
}
