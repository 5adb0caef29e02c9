package resolver

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/xy-planning-network/switchback"
)

// A Resolver turns a Descriptor into a callable handler.
type Resolver interface {
	Resolve(d Descriptor) (any, error)
}

// A Factory makes a new handler instance.
type Factory func() any

// Registry resolves Descriptors against factories registered by name.
// Func and BoundMethod Descriptors need no registration.
// A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry constructs an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register makes factory available under name, replacing any previous registration.
func (reg *Registry) Register(name string, factory Factory) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.factories[name] = factory
}

// RegisterValue makes v available under name.
// Every resolution of name returns the same v.
func (reg *Registry) RegisterValue(name string, v any) {
	reg.Register(name, func() any { return v })
}

// Resolve turns d into a callable handler.
// Every error Resolve returns wraps switchback.ErrUnresolvable.
func (reg *Registry) Resolve(d Descriptor) (any, error) {
	switch t := d.(type) {
	case Func:
		if t.Value == nil {
			return nil, fmt.Errorf("%w: nil handler", switchback.ErrUnresolvable)
		}
		return t.Value, nil

	case Named:
		return reg.instance(string(t))

	case ClassMethod:
		v, err := reg.instance(t.Class)
		if err != nil {
			return nil, err
		}
		return method(v, t.Method)

	case BoundMethod:
		if t.Instance == nil {
			return nil, fmt.Errorf("%w: nil instance for method %s", switchback.ErrUnresolvable, t.Method)
		}
		return method(t.Instance, t.Method)

	case nil:
		return nil, fmt.Errorf("%w: no descriptor", switchback.ErrUnresolvable)
	}

	return nil, fmt.Errorf("%w: unknown descriptor %T", switchback.ErrUnresolvable, d)
}

func (reg *Registry) instance(name string) (any, error) {
	reg.mu.RLock()
	factory, ok := reg.factories[name]
	reg.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: nothing registered as %q", switchback.ErrUnresolvable, name)
	}

	v := factory()
	if v == nil {
		return nil, fmt.Errorf("%w: %q made a nil handler", switchback.ErrUnresolvable, name)
	}

	return v, nil
}

// method looks up the method named name on v.
// A lower-cased first letter is tried upper-cased as well,
// so "users:show" finds Show.
func method(v any, name string) (any, error) {
	rv := reflect.ValueOf(v)
	m := rv.MethodByName(name)
	if !m.IsValid() {
		r, size := utf8.DecodeRuneInString(name)
		m = rv.MethodByName(string(unicode.ToUpper(r)) + name[size:])
	}

	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T has no method %s", switchback.ErrUnresolvable, v, name)
	}

	return m.Interface(), nil
}
