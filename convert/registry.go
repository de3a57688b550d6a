package convert

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
)

// Converter maps values of Type to nodes and back. Type may be an
// interface type, in which case the converter also serves, on the
// deserializing side, every type implementing it.
//
// FromNode must return a value assignable to the type being filled,
// to a pointer to it, or to one of its embedded fields.
type Converter struct {
	Type     reflect.Type
	ToNode   func(v any) (*ir.Node, error)
	FromNode func(n *ir.Node) (any, error)
}

// Provider supplies converters when a Registry is built.
type Provider interface {
	ProvideConverters() []Converter
}

type ProviderFunc func() []Converter

func (f ProviderFunc) ProvideConverters() []Converter { return f() }

// Registry holds the converters of a process. It is built once, usually
// at startup, and passed to the code that needs it, for example with
// WithRegistry. Resolution is safe for concurrent use with registration.
//
// A nil *Registry has no converters; only the built-in rules apply.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Converter
	// interface typed converters in registration order
	ifaces []reflect.Type
}

// New builds a registry from providers, registering their converters in
// order. A conflict between providers is an error.
func New(providers ...Provider) (*Registry, error) {
	r := &Registry{byType: map[reflect.Type]*Converter{}}
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("%w: provider %d is nil", ErrInvalidConverter, i)
		}
		for _, c := range p.ProvideConverters() {
			if err := r.Register(c); err != nil {
				return nil, fmt.Errorf("provider %d: %w", i, err)
			}
		}
	}
	return r, nil
}

// Register adds c. It fails with ErrAlreadyRegistered if c.Type already
// has a converter.
func (r *Registry) Register(c Converter) error {
	return r.put(c, false)
}

// Replace adds c, overriding any converter registered for c.Type.
func (r *Registry) Replace(c Converter) error {
	return r.put(c, true)
}

func (r *Registry) put(c Converter, replace bool) error {
	if r == nil {
		return fmt.Errorf("%w: nil registry", ErrInvalidConverter)
	}
	if c.Type == nil {
		return fmt.Errorf("%w: no type", ErrInvalidConverter)
	}
	if c.ToNode == nil || c.FromNode == nil {
		return fmt.Errorf("%w: %s needs both ToNode and FromNode", ErrInvalidConverter, c.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byType == nil {
		r.byType = map[reflect.Type]*Converter{}
	}
	_, exists := r.byType[c.Type]
	if exists && !replace {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, c.Type)
	}
	r.byType[c.Type] = &c
	if !exists && c.Type.Kind() == reflect.Interface {
		r.ifaces = append(r.ifaces, c.Type)
	}
	if debug.Convert() {
		debug.Logf("registered converter for %s (replace=%t)", c.Type, exists)
	}
	return nil
}

// Types returns the registered types, interface types last in
// registration order.
func (r *Registry) Types() []reflect.Type {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]reflect.Type, 0, len(r.byType))
	for t := range r.byType {
		if t.Kind() != reflect.Interface {
			res = append(res, t)
		}
	}
	return append(res, r.ifaces...)
}

// ResolveForSerialize returns the converter registered for exactly t, or
// nil.
func (r *Registry) ResolveForSerialize(t reflect.Type) *Converter {
	if r == nil || t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// ResolveForDeserialize returns the converter for t itself if there is
// one. Otherwise it walks outward from t breadth first, one step at a
// time: from a pointer type to its element, from any other type to its
// pointer type, from a struct to its embedded fields, and to the
// registered interface types implemented, in registration order. The
// nearest registered type wins. It returns nil when nothing matches.
func (r *Registry) ResolveForDeserialize(t reflect.Type) *Converter {
	if r == nil || t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c := r.byType[t]; c != nil {
		return c
	}
	if len(r.byType) == 0 {
		return nil
	}
	seen := map[reflect.Type]bool{t: true}
	q := []reflect.Type{t}
	for len(q) != 0 {
		cur := q[0]
		q = q[1:]
		for _, next := range r.neighbors(cur) {
			if seen[next] {
				continue
			}
			seen[next] = true
			if c := r.byType[next]; c != nil {
				if debug.Convert() {
					debug.Logf("resolved %s through %s", t, next)
				}
				return c
			}
			q = append(q, next)
		}
	}
	return nil
}

func (r *Registry) neighbors(t reflect.Type) []reflect.Type {
	var res []reflect.Type
	if t.Kind() == reflect.Pointer {
		res = append(res, t.Elem())
	} else if t.Kind() != reflect.Interface {
		res = append(res, reflect.PointerTo(t))
	}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous {
				res = append(res, f.Type)
			}
		}
	}
	for _, it := range r.ifaces {
		if it != t && t.Implements(it) {
			res = append(res, it)
		}
	}
	return res
}
