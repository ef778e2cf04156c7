package double

import (
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// argPrinter renders call arguments in error messages and invocation logs.
var argPrinter = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// UnconfiguredCallError is the panic value raised by a strict double when a
// method without any stub is called.
type UnconfiguredCallError struct {
	Type   reflect.Type
	Method string
	Args   []any
}

// Error implements the error interface.
func (e *UnconfiguredCallError) Error() string {
	// Example: double: unconfigured call to examples.Clock.Now() on a strict double
	return "double: unconfigured call to " + typeName(e.Type) + "." + e.Method +
		"(" + formatArgs(e.Args) + ") on a strict double"
}

// NoFactoryError is returned when no double factory is registered for a type.
type NoFactoryError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NoFactoryError) Error() string {
	return "double: no factory registered for " + typeName(e.Type)
}

// InvalidFactoryError is returned when a registered factory produced something
// that is not an initialized double.
type InvalidFactoryError struct {
	Type reflect.Type
	Got  reflect.Type
}

// Error implements the error interface.
func (e InvalidFactoryError) Error() string {
	return "double: factory for " + typeName(e.Type) + " returned " + typeName(e.Got) +
		" which is not an initialized double"
}

// UnknownMethodError is returned by Expect for a method the double does not have.
type UnknownMethodError struct {
	Type   reflect.Type
	Method string
}

// Error implements the error interface.
func (e UnknownMethodError) Error() string {
	return "double: " + typeName(e.Type) + " has no method " + e.Method
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = argPrinter.Sprintf("%v", a)
	}
	return strings.Join(parts, ", ")
}
