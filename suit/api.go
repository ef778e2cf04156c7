package suit

import (
	"reflect"

	"github.com/sghaida/autosuit/double"
)

// DoubleOf returns the double bound to T, binding a fresh strict double first
// if T is unbound.
func DoubleOf[T any](h Host) (double.Double[T], error) {
	b, err := h.container().getOrAdd(reflect.TypeFor[T]())
	if err != nil {
		return double.Double[T]{}, err
	}
	return AsDouble[T](b)
}

// NestedOf returns the nested container bound to T.
func NestedOf[T any](h Host) (*Nested[T], error) {
	t := reflect.TypeFor[T]()
	b, ok := h.container().lookup(t)
	if !ok {
		return nil, NotBoundError{Type: t}
	}
	return AsNested[T](b)
}

// Dependency returns the value the subject would receive for T. Unbound types
// resolve to a fresh strict double.
func Dependency[T any](h Host) (T, error) {
	v, err := h.container().dependency(reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v), nil
}

// BindingOf returns the binding stored for T, if any.
func BindingOf[T any](h Host) (Binding, bool) {
	return h.container().lookup(reflect.TypeFor[T]())
}

// Bind binds T to value, which may be an instance, a double or a nested
// container. The existing binding is left untouched when value cannot
// satisfy T.
func Bind[T any](h Host, value any) error {
	return h.container().set(reflect.TypeFor[T](), value)
}

// BindInstance binds T to a real object. Doubles and containers are refused;
// use BindDouble or BindNested for them.
func BindInstance[T any](h Host, v T) error {
	t := reflect.TypeFor[T]()
	if _, ok := double.ViewOf(v); ok {
		return WrongKindError{Type: t, Want: KindInstance.String(), Got: KindDouble.String(), Hint: "BindDouble"}
	}
	if _, ok := any(v).(Provider); ok {
		return WrongKindError{Type: t, Want: KindInstance.String(), Got: KindNested.String(), Hint: "BindNested"}
	}
	return Bind[T](h, v)
}

// BindDouble binds T to a double created by the caller, for example one with
// custom behavior installed through On.
func BindDouble[T any](h Host, d double.Double[T]) error {
	t := reflect.TypeFor[T]()
	if d.Mock == nil {
		return NullBindingError{Type: t}
	}
	if got := d.Type(); got != t {
		return TypeMismatchError{Type: t, Got: got}
	}
	return Bind[T](h, d)
}

// BindLooseDouble binds T to a fresh loose double.
func BindLooseDouble[T any](h Host) error {
	d, err := double.New[T](double.Loose)
	if err != nil {
		return ConstructionError{Type: reflect.TypeFor[T](), Op: "create double for", Err: err}
	}
	return BindDouble[T](h, d)
}

// BindNested binds T to the subject of another container.
func BindNested[T any](h Host, p Provider) error {
	if p == nil || isNil(p) {
		return NullBindingError{Type: reflect.TypeFor[T]()}
	}
	return Bind[T](h, p)
}

// BindNewNested binds T to a new suit built around Impl.
func BindNewNested[T, Impl any](h Host) error {
	return BindNested[T](h, New[Impl]())
}

// Setup programs the double bound to T. Repeated calls add to the same double;
// a later expectation for the same method and arguments replaces the earlier.
func Setup[T any](h Host, exps ...double.Expectation) error {
	d, err := DoubleOf[T](h)
	if err != nil {
		return err
	}
	return d.Expect(exps...)
}

// Configure passes the double bound to T to each fn, in order. It is the place
// for setups Setup cannot express, such as Run callbacks or methods without
// results.
func Configure[T any](h Host, fns ...func(double.Double[T])) error {
	d, err := DoubleOf[T](h)
	if err != nil {
		return err
	}
	for _, fn := range fns {
		fn(d)
	}
	return nil
}

// ConfigureNested passes the nested container bound to T to each fn, stopping
// at the first error.
func ConfigureNested[T any](h Host, fns ...func(*Nested[T]) error) error {
	n, err := NestedOf[T](h)
	if err != nil {
		return err
	}
	for _, fn := range fns {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}
