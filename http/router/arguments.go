package router

import (
	"net/http"

	"github.com/xy-planning-network/switchback"
)

// An Argument is one named value a route runs with.
type Argument struct {
	Name  string
	Value string
}

// Arguments is an ordered list of route arguments.
// Names are unique; order is the order names were first seen in.
type Arguments []Argument

// Get retrieves the value stored under name.
func (a Arguments) Get(name string) (string, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return "", false
}

// Map copies a into a map keyed by name.
func (a Arguments) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, arg := range a {
		m[arg.Name] = arg.Value
	}

	return m
}

// Values lists the values of a in order.
func (a Arguments) Values() []string {
	vals := make([]string, len(a))
	for i, arg := range a {
		vals[i] = arg.Value
	}

	return vals
}

// With returns a copy of a with name set to value.
// An existing name keeps its position.
func (a Arguments) With(name, value string) Arguments {
	out := make(Arguments, len(a), len(a)+1)
	copy(out, a)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}

	return append(out, Argument{Name: name, Value: value})
}

// Merge returns a copy of a overridden name by name with the values of b.
// Names only b holds are appended in b's order.
func (a Arguments) Merge(b Arguments) Arguments {
	out := make(Arguments, len(a), len(a)+len(b))
	copy(out, a)

	for _, arg := range b {
		out = out.set(arg)
	}

	return out
}

// set writes arg into a in place, appending when its name is new.
func (a Arguments) set(arg Argument) Arguments {
	for i := range a {
		if a[i].Name == arg.Name {
			a[i].Value = arg.Value
			return a
		}
	}

	return append(a, arg)
}

// ArgumentsFromRequest retrieves the arguments the route matched for r runs with.
func ArgumentsFromRequest(r *http.Request) Arguments {
	args, _ := switchback.Attribute(r, switchback.RouteArgumentsKey).(Arguments)
	return args
}

// Param retrieves the single argument named name the route matched for r runs with.
func Param(r *http.Request, name string) string {
	val, _ := ArgumentsFromRequest(r).Get(name)
	return val
}
