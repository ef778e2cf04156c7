package suit

import (
	"reflect"

	"github.com/sghaida/autosuit/double"
)

// Kind tells which variant a Binding holds.
type Kind uint8

const (
	// KindInstance is a real object satisfying the dependency.
	KindInstance Kind = iota + 1

	// KindDouble is a double produced by the double package.
	KindDouble

	// KindNested is another container whose subject satisfies the dependency.
	KindNested
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindDouble:
		return "double"
	case KindNested:
		return "nested container"
	default:
		return ""
	}
}

// Binding is the stored resolution of one dependency type. It holds exactly
// one of an instance, a double or a nested container.
type Binding struct {
	kind   Kind
	value  any
	mock   *double.Mock
	nested Provider
}

// bindingFrom classifies obj. Engine-produced objects are stored as their Mock
// so double operations stay available; they never count as instances.
func bindingFrom(t reflect.Type, obj any) (Binding, error) {
	if isNil(obj) {
		return Binding{}, NullBindingError{Type: t}
	}
	if m, ok := double.ViewOf(obj); ok {
		return Binding{kind: KindDouble, mock: m}, nil
	}
	if p, ok := obj.(Provider); ok {
		return Binding{kind: KindNested, nested: p}, nil
	}
	return Binding{kind: KindInstance, value: obj}, nil
}

// Kind returns the variant held by b.
func (b Binding) Kind() Kind { return b.kind }

// IsDouble reports whether b holds a double.
func (b Binding) IsDouble() bool { return b.kind == KindDouble }

// IsNested reports whether b holds a nested container.
func (b Binding) IsNested() bool { return b.kind == KindNested }

// Mock returns the double held by b, or nil.
func (b Binding) Mock() *double.Mock { return b.mock }

// concreteType is the type reported in errors about b.
func (b Binding) concreteType() reflect.Type {
	switch b.kind {
	case KindInstance:
		return reflect.TypeOf(b.value)
	case KindDouble:
		return reflect.TypeOf(b.mock.View())
	case KindNested:
		return b.nested.subjectType()
	default:
		return nil
	}
}

// validateAssignable checks that b can satisfy t without building anything.
func (b Binding) validateAssignable(t reflect.Type) error {
	got := b.concreteType()
	if got == nil || !got.AssignableTo(t) {
		return IncompatibleDependencyError{Type: t, Got: got}
	}
	return nil
}

// instance returns a value assignable to t. A nested container builds its
// subject on demand.
func (b Binding) instance(t reflect.Type) (any, error) {
	if err := b.validateAssignable(t); err != nil {
		return nil, err
	}
	switch b.kind {
	case KindNested:
		return b.nested.subjectValue()
	case KindDouble:
		return b.mock.View(), nil
	default:
		return b.value, nil
	}
}

// AsDouble returns the double held by b, typed for T.
func AsDouble[T any](b Binding) (double.Double[T], error) {
	t := reflect.TypeFor[T]()
	if b.kind != KindDouble {
		return double.Double[T]{}, NotADoubleError{Type: t, Got: b.kind.String()}
	}
	if got := b.mock.Type(); got != t {
		return double.Double[T]{}, TypeMismatchError{Type: t, Got: got}
	}
	return double.Double[T]{Mock: b.mock}, nil
}

// AsInstance returns a value of T produced by b: the instance itself, the
// subject of a nested container, or the object view of a double.
func AsInstance[T any](b Binding) (T, error) {
	v, err := b.instance(reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v), nil
}

// AsNested returns the nested container held by b, typed for T.
func AsNested[T any](b Binding) (*Nested[T], error) {
	t := reflect.TypeFor[T]()
	if b.kind != KindNested {
		return nil, WrongKindError{Type: t, Want: KindNested.String(), Got: b.kind.String()}
	}
	if got := b.nested.subjectType(); !got.AssignableTo(t) {
		return nil, TypeMismatchError{Type: t, Got: got}
	}
	return &Nested[T]{p: b.nested}, nil
}

// cast converts v, already checked assignable to T, into T. Assignable but
// non-identical types such as a named slice need reflect to convert.
func cast[T any](v any) T {
	if typed, ok := v.(T); ok {
		return typed
	}
	out := reflect.New(reflect.TypeFor[T]()).Elem()
	out.Set(reflect.ValueOf(v))
	return out.Interface().(T)
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
