package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
)

// AnyMethod registers a route for every method no other route claims for the same path.
const AnyMethod = "*"

// A PathMatcher matches methods and paths against a compiled route table.
type PathMatcher interface {
	// Dispatch matches method and path.
	Dispatch(method, path string) Match

	// AllowedMethods lists every method path matches under.
	AllowedMethods(path string) []string
}

// A Definition is what a PathMatcher compiles for one route.
type Definition struct {
	Identifier string
	Methods    []string
	Pattern    string
}

// A MatcherBuilder compiles Definitions into a PathMatcher.
type MatcherBuilder func(defs []Definition) (PathMatcher, error)

// BuildMuxMatcher is the default MatcherBuilder.
func BuildMuxMatcher(defs []Definition) (PathMatcher, error) {
	return NewMuxMatcher(defs)
}

var _ PathMatcher = (*MuxMatcher)(nil)

// MuxMatcher is a PathMatcher matching static paths by lookup
// and paths with parameters through a gorilla/mux router per method.
//
// Static paths win over parameterized ones;
// among parameterized paths the first registered wins.
type MuxMatcher struct {
	methods []string
	static  map[string]map[string]string
	dynamic map[string]*dynamicRoutes
}

type dynamicRoutes struct {
	router    *mux.Router
	routes    map[*mux.Route]dynamicRoute
	templates map[string]bool
}

type dynamicRoute struct {
	identifier string
	params     []string
}

// NewMuxMatcher compiles defs into a *MuxMatcher.
//
// Registering two routes matching the same path under the same method is an error
// wrapping switchback.ErrNotValid, as is any pattern ParsePattern rejects.
func NewMuxMatcher(defs []Definition) (*MuxMatcher, error) {
	mm := &MuxMatcher{
		static:  make(map[string]map[string]string),
		dynamic: make(map[string]*dynamicRoutes),
	}

	for _, def := range defs {
		exprs, err := ParsePattern(def.Pattern)
		if err != nil {
			return nil, err
		}

		for _, method := range def.Methods {
			mm.addMethod(method)
			for _, expr := range exprs {
				if err := mm.add(method, def.Identifier, expr); err != nil {
					return nil, err
				}
			}
		}
	}

	return mm, nil
}

func (mm *MuxMatcher) addMethod(method string) {
	for _, m := range mm.methods {
		if m == method {
			return
		}
	}
	mm.methods = append(mm.methods, method)
}

func (mm *MuxMatcher) add(method, identifier string, expr Expression) error {
	tpl := leadingSlash(expr.Template())

	if expr.IsStatic() {
		paths, ok := mm.static[method]
		if !ok {
			paths = make(map[string]string)
			mm.static[method] = paths
		}
		if _, ok := paths[tpl]; ok {
			return fmt.Errorf("%w: cannot register two routes matching %q for method %s", switchback.ErrNotValid, tpl, method)
		}
		paths[tpl] = identifier
		return nil
	}

	dr, ok := mm.dynamic[method]
	if !ok {
		dr = &dynamicRoutes{
			router:    mux.NewRouter(),
			routes:    make(map[*mux.Route]dynamicRoute),
			templates: make(map[string]bool),
		}
		mm.dynamic[method] = dr
	}
	if dr.templates[tpl] {
		return fmt.Errorf("%w: cannot register two routes matching %q for method %s", switchback.ErrNotValid, tpl, method)
	}

	route := dr.router.NewRoute().Path(tpl)
	if err := route.GetError(); err != nil {
		return fmt.Errorf("%w: %s", switchback.ErrNotValid, err)
	}

	dr.templates[tpl] = true
	dr.routes[route] = dynamicRoute{identifier: identifier, params: expr.Params()}

	return nil
}

// Dispatch matches method and path, trying in order:
// method itself, GET when method is HEAD, then AnyMethod.
// Failing those, a path matching under some other method is MethodNotAllowed.
func (mm *MuxMatcher) Dispatch(method, path string) Match {
	if m, ok := mm.match(method, path); ok {
		return m
	}

	if method == http.MethodHead {
		if m, ok := mm.match(http.MethodGet, path); ok {
			return m
		}
	}

	if m, ok := mm.match(AnyMethod, path); ok {
		return m
	}

	if len(mm.AllowedMethods(path)) > 0 {
		return Match{Status: MethodNotAllowed}
	}

	return Match{Status: NotFound}
}

// AllowedMethods lists every method path matches under, in the order methods were first registered.
func (mm *MuxMatcher) AllowedMethods(path string) []string {
	var allowed []string
	for _, method := range mm.methods {
		if _, ok := mm.match(method, path); ok {
			allowed = append(allowed, method)
		}
	}

	return allowed
}

func (mm *MuxMatcher) match(method, path string) (Match, bool) {
	if id, ok := mm.static[method][path]; ok {
		return Match{Status: Found, Identifier: id}, true
	}

	dr, ok := mm.dynamic[method]
	if !ok {
		return Match{}, false
	}

	req := &http.Request{Method: method, URL: &url.URL{Path: path}}
	var rm mux.RouteMatch
	if !dr.router.Match(req, &rm) || rm.MatchErr != nil {
		return Match{}, false
	}

	route, ok := dr.routes[rm.Route]
	if !ok {
		return Match{}, false
	}

	args := make(Arguments, 0, len(route.params))
	for _, name := range route.params {
		args = append(args, Argument{Name: name, Value: rm.Vars[name]})
	}

	return Match{Status: Found, Identifier: route.identifier, Arguments: args}, true
}

func leadingSlash(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}

	return path
}
