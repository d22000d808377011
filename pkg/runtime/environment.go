package runtime

import (
	"fmt"
)

// Environment provides lexical scoping for lispy runtime values.
//
// Bindings are owned by the environment. The parent link is a borrowed
// reference: the global environment outlives every closure that points at
// it, and a closure's private environment dies with the closure.
type Environment struct {
	names  []string
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// SetParent relinks the environment. A link that would make e its own
// ancestor is refused.
func (e *Environment) SetParent(parent *Environment) error {
	for p := parent; p != nil; p = p.parent {
		if p == e {
			return fmt.Errorf("environment cycle: scope would become its own ancestor")
		}
	}
	e.parent = parent
	return nil
}

// Root walks the parent chain to the outermost environment.
func (e *Environment) Root() *Environment {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Define inserts or overwrites a binding in the current scope, taking
// ownership of value. A replaced value is destroyed.
func (e *Environment) Define(name string, value Value) {
	if old, ok := e.values[name]; ok {
		Destroy(old)
	} else {
		e.names = append(e.names, name)
	}
	e.values[name] = value
}

// DefineGlobal binds in the root of the chain regardless of where it is
// called from.
func (e *Environment) DefineGlobal(name string, value Value) {
	e.Root().Define(name, value)
}

// Get returns a copy of the binding, searching outward through the scope
// chain. An unbound name yields an UnboundSymbol error value.
func (e *Environment) Get(name string) Value {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return Copy(v)
		}
	}
	return ErrUnbound(name)
}

// Lookup is Get without the copy, for callers that only inspect the binding.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns the names bound in this scope, in definition order.
func (e *Environment) Keys() []string {
	keys := make([]string, len(e.names))
	copy(keys, e.names)
	return keys
}

// Len reports how many names are bound in this scope.
func (e *Environment) Len() int { return len(e.names) }

// Clone deep-copies every binding. The parent link is shared, never cloned.
func (e *Environment) Clone() *Environment {
	out := &Environment{
		names:  make([]string, len(e.names)),
		values: make(map[string]Value, len(e.values)),
		parent: e.parent,
	}
	copy(out.names, e.names)
	for k, v := range e.values {
		out.values[k] = Copy(v)
	}
	return out
}

// Destroy releases every binding and drops the parent link.
func (e *Environment) Destroy() {
	for _, name := range e.names {
		Destroy(e.values[name])
	}
	e.names = nil
	e.values = make(map[string]Value)
	e.parent = nil
}
