package ctor

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrRegistryPanic is returned if registration panics internally.
var ErrRegistryPanic = errors.New("ctor: panic during Register")

// Registry stores constructors per produced type, in registration order.
//
// It is safe for concurrent use. Registration is expected to finish before
// the first lookup of a type; lookups done by the container are memoized.
type Registry struct {
	mu    sync.RWMutex
	ctors map[reflect.Type][]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: map[reflect.Type][]Constructor{}}
}

// Register validates and stores constructor functions. Nothing is stored when
// any of fns is invalid.
func (r *Registry) Register(fns ...any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrRegistryPanic, rec)
		}
	}()

	shapes := make([]Constructor, 0, len(fns))
	for _, fn := range fns {
		c, err := Inspect(fn)
		if err != nil {
			return err
		}
		shapes = append(shapes, c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range shapes {
		r.ctors[c.Type] = append(r.ctors[c.Type], c)
	}
	return nil
}

// MustRegister is like Register but panics on error. It returns the registry
// for chaining.
func (r *Registry) MustRegister(fns ...any) *Registry {
	if err := r.Register(fns...); err != nil {
		panic(err)
	}
	return r
}

// For returns the constructors registered for t, in registration order.
func (r *Registry) For(t reflect.Type) []Constructor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.ctors[t]
	out := make([]Constructor, len(list))
	copy(out, list)
	return out
}

// Has reports whether at least one constructor is registered for t.
func (r *Registry) Has(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ctors[t]) > 0
}

// Default is the registry used by the suit container.
var Default = NewRegistry()

// Register stores constructors in Default.
func Register(fns ...any) error { return Default.Register(fns...) }

// MustRegister stores constructors in Default and panics on error.
func MustRegister(fns ...any) { Default.MustRegister(fns...) }

// For returns the constructors Default holds for t.
func For(t reflect.Type) []Constructor { return Default.For(t) }
