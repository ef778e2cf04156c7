package suit

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// Host is implemented by everything that stores dependency bindings:
// *Container, *Suit[S] and *Nested[T]. The typed operations of this package
// (DoubleOf, Dependency, Bind, Setup, ...) take a Host.
type Host interface {
	container() *Container
}

// Container stores one Binding per dependency type.
//
// A Container created with NewContainer has no subject and accepts bindings
// at any time. The Container embedded in a Suit rejects them once the suit's
// subject is built.
type Container struct {
	bindings *xsync.MapOf[reflect.Type, Binding]

	// commit runs store unless the owner forbids changes; nil allows all.
	commit func(t reflect.Type, store func()) error
}

// NewContainer returns an empty container without a subject.
func NewContainer() *Container {
	return &Container{bindings: xsync.NewMapOf[reflect.Type, Binding]()}
}

func (c *Container) container() *Container { return c }

// lookup returns the existing binding for t.
func (c *Container) lookup(t reflect.Type) (Binding, bool) {
	return c.bindings.Load(t)
}

// getOrAdd returns the binding for t, storing a fresh strict double first if
// t is unbound. Concurrent first accesses store exactly one double.
func (c *Container) getOrAdd(t reflect.Type) (Binding, error) {
	if b, ok := c.bindings.Load(t); ok {
		return b, nil
	}

	factory, err := doubleFactoryFor(t)
	if err != nil {
		return Binding{}, err
	}

	var createErr error
	b, ok := c.bindings.Compute(t, func(old Binding, loaded bool) (Binding, bool) {
		if loaded {
			return old, false
		}
		m, err := factory()
		if err != nil {
			createErr = err
			return Binding{}, true
		}
		return Binding{kind: KindDouble, mock: m}, false
	})
	if !ok {
		return Binding{}, ConstructionError{Type: t, Op: "create double for", Err: createErr}
	}
	return b, nil
}

// dependency resolves t to a value, defaulting to a strict double.
func (c *Container) dependency(t reflect.Type) (any, error) {
	b, err := c.getOrAdd(t)
	if err != nil {
		return nil, err
	}
	return b.instance(t)
}

// set validates value for t and replaces the binding.
func (c *Container) set(t reflect.Type, value any) error {
	b, err := bindingFrom(t, value)
	if err != nil {
		return err
	}
	if err := b.validateAssignable(t); err != nil {
		return err
	}

	store := func() { c.bindings.Store(t, b) }
	if c.commit == nil {
		store()
		return nil
	}
	return c.commit(t, store)
}

// Len returns the number of bindings.
func (c *Container) Len() int { return c.bindings.Size() }

// Reset prepares the container for the next test case. Doubles are reset and
// kept, nested containers are reset recursively and kept, and instances are
// removed so the next access falls back to a fresh double.
func (c *Container) Reset() {
	c.bindings.Range(func(t reflect.Type, b Binding) bool {
		switch b.kind {
		case KindDouble:
			b.mock.Reset()
		case KindNested:
			b.nested.Reset()
		default:
			c.bindings.Compute(t, func(old Binding, loaded bool) (Binding, bool) {
				// keep a binding stored concurrently in place of the instance
				return old, !loaded || old.kind == KindInstance
			})
		}
		return true
	})
}
