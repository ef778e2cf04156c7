package suit

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sghaida/autosuit/ctor"
	"github.com/sghaida/autosuit/double"
)

// Process-wide type metadata shared by every container. Only successful
// lookups are memoized, so a type whose constructor or double is registered
// late still resolves once registration happened.
var (
	shapeCache   = xsync.NewMapOf[reflect.Type, ctor.Constructor]()
	factoryCache = xsync.NewMapOf[reflect.Type, func() (*double.Mock, error)]()
)

// constructorShapeFor picks the constructor used to build t: the one with the
// most parameters, the first registered one on ties.
func constructorShapeFor(t reflect.Type) (ctor.Constructor, error) {
	if c, ok := shapeCache.Load(t); ok {
		return c, nil
	}

	candidates := ctor.For(t)
	if len(candidates) == 0 {
		return ctor.Constructor{}, NoConstructorError{Type: t}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Arity() > best.Arity() {
			best = c
		}
	}

	actual, _ := shapeCache.LoadOrStore(t, best)
	return actual, nil
}

// doubleFactoryFor returns a function creating fresh strict doubles for t.
func doubleFactoryFor(t reflect.Type) (func() (*double.Mock, error), error) {
	if f, ok := factoryCache.Load(t); ok {
		return f, nil
	}
	if !double.Registered(t) {
		return nil, ConstructionError{Type: t, Op: "create double for", Err: double.NoFactoryError{Type: t}}
	}

	f := func() (*double.Mock, error) { return double.Create(t, double.Strict) }
	actual, _ := factoryCache.LoadOrStore(t, f)
	return actual, nil
}
