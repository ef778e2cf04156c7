package suit

import "reflect"

// NullBindingError is returned when a dependency is bound to nil.
type NullBindingError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NullBindingError) Error() string {
	// Example: suit: cannot bind examples.Clock to nil
	return "suit: cannot bind " + typeName(e.Type) + " to nil"
}

// TypeMismatchError is returned when a binding holds a double or a nested
// container made for a type other than the one requested.
type TypeMismatchError struct {
	// Type is the requested dependency type.
	Type reflect.Type

	// Got is the type the stored double or container was made for.
	Got reflect.Type
}

// Error implements the error interface.
func (e TypeMismatchError) Error() string {
	// Example: suit: binding for examples.Clock was made for examples.Store
	return "suit: binding for " + typeName(e.Type) + " was made for " + typeName(e.Got)
}

// WrongKindError is returned when a binding, or a value about to become one,
// is not of the kind an operation needs.
type WrongKindError struct {
	Type reflect.Type
	Want string
	Got  string

	// Hint names the function to use instead, if any.
	Hint string
}

// Error implements the error interface.
func (e WrongKindError) Error() string {
	// Example: suit: dependency examples.Clock is a double, not a nested container
	msg := "suit: dependency " + typeName(e.Type) + " is " + article(e.Got) + ", not " + article(e.Want)
	if e.Hint != "" {
		msg += "; use " + e.Hint
	}
	return msg
}

// NotADoubleError is returned when a double is requested for a dependency
// bound to something else.
type NotADoubleError struct {
	Type reflect.Type
	Got  string
}

// Error implements the error interface.
func (e NotADoubleError) Error() string {
	return "suit: dependency " + typeName(e.Type) + " is " + article(e.Got) + ", not a double"
}

// NotBoundError is returned when an operation needs an existing binding.
type NotBoundError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NotBoundError) Error() string {
	return "suit: dependency " + typeName(e.Type) + " is not bound yet"
}

// IncompatibleDependencyError is returned when a binding cannot produce a
// value assignable to the requested type.
type IncompatibleDependencyError struct {
	Type reflect.Type
	Got  reflect.Type
}

// Error implements the error interface.
func (e IncompatibleDependencyError) Error() string {
	// Example: suit: *examples.File cannot be used as examples.Clock
	return "suit: " + typeName(e.Got) + " cannot be used as " + typeName(e.Type)
}

// AlreadyBuiltError is returned when a binding is changed after the subject
// was built.
type AlreadyBuiltError struct {
	Subject reflect.Type
	Type    reflect.Type
}

// Error implements the error interface.
func (e AlreadyBuiltError) Error() string {
	return "suit: cannot bind " + typeName(e.Type) + ": subject " + typeName(e.Subject) +
		" is already built; set dependencies before the first Subject call or Reset first"
}

// NoConstructorError is returned when no constructor is registered for a type
// that has to be built.
type NoConstructorError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NoConstructorError) Error() string {
	return "suit: no constructor registered for " + typeName(e.Type)
}

// ConstructionError is returned when a value could not be produced.
type ConstructionError struct {
	Type reflect.Type

	// Op is what was being attempted, e.g. "create double".
	Op  string
	Err error
}

// Error implements the error interface.
func (e ConstructionError) Error() string {
	msg := "suit: " + e.Op + " " + typeName(e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e ConstructionError) Unwrap() error { return e.Err }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func article(kind string) string {
	switch kind {
	case "":
		return "unknown"
	case "instance":
		return "an instance"
	default:
		return "a " + kind
	}
}
