package double

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// Factory creates a double for one dependency type in the given mode.
type Factory func(mode Mode) any

var factories = xsync.NewMapOf[reflect.Type, Factory]()

// Register makes doubles for T available to New and Create. Registering T
// again replaces the previous factory.
func Register[T any](factory func(mode Mode) T) {
	factories.Store(reflect.TypeFor[T](), func(mode Mode) any { return factory(mode) })
}

// Registered reports whether a factory exists for t.
func Registered(t reflect.Type) bool {
	_, ok := factories.Load(t)
	return ok
}

// Create returns a fresh double for t.
func Create(t reflect.Type, mode Mode) (*Mock, error) {
	factory, ok := factories.Load(t)
	if !ok {
		return nil, NoFactoryError{Type: t}
	}

	obj := factory(mode)
	m, ok := ViewOf(obj)
	if !ok {
		return nil, InvalidFactoryError{Type: t, Got: reflect.TypeOf(obj)}
	}
	return m, nil
}

// New returns a fresh typed double for T.
func New[T any](mode Mode) (Double[T], error) {
	m, err := Create(reflect.TypeFor[T](), mode)
	if err != nil {
		return Double[T]{}, err
	}
	return Double[T]{Mock: m}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](mode Mode) Double[T] {
	d, err := New[T](mode)
	if err != nil {
		panic(err)
	}
	return d
}
