package resolver

import (
	"fmt"
	"strings"
)

// A Descriptor describes how to find a route's handler.
// The set of Descriptors is closed: Named, ClassMethod, BoundMethod and Func.
type Descriptor interface {
	fmt.Stringer
	descriptor()
}

// Named refers to a handler registered under a name.
type Named string

func (Named) descriptor() {}

func (n Named) String() string { return string(n) }

// ClassMethod refers to a method on an instance of a registered name.
// A new instance is made every time a ClassMethod is resolved.
type ClassMethod struct {
	Class  string
	Method string
}

func (ClassMethod) descriptor() {}

func (c ClassMethod) String() string { return c.Class + ":" + c.Method }

// BoundMethod refers to a method on an instance the caller already holds.
type BoundMethod struct {
	Instance any
	Method   string
}

func (BoundMethod) descriptor() {}

func (b BoundMethod) String() string { return fmt.Sprintf("%T:%s", b.Instance, b.Method) }

// Func wraps a value that is callable as is.
type Func struct {
	Value any
}

func (Func) descriptor() {}

func (f Func) String() string { return fmt.Sprintf("%T", f.Value) }

// Parse sorts v into a Descriptor.
//
// Descriptors are returned unchanged.
// A string in "Class:Method" form is a ClassMethod; any other string is Named.
// A two-element slice of an instance and a method name is a BoundMethod.
// Anything else is a Func.
func Parse(v any) Descriptor {
	switch t := v.(type) {
	case Descriptor:
		return t
	case string:
		if class, method, ok := strings.Cut(t, ":"); ok && class != "" && method != "" {
			return ClassMethod{Class: class, Method: method}
		}
		return Named(t)
	case []any:
		if len(t) == 2 {
			if method, ok := t[1].(string); ok {
				return BoundMethod{Instance: t[0], Method: method}
			}
		}
	case [2]any:
		if method, ok := t[1].(string); ok {
			return BoundMethod{Instance: t[0], Method: method}
		}
	}

	return Func{Value: v}
}
