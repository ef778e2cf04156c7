// Package ctor records constructor functions so the container can find out
// what a type needs in order to be built.
//
// Go has no runtime list of a type's constructors, so they are registered
// explicitly, usually from an init func or TestMain:
//
//	func init() {
//		ctor.MustRegister(NewOrderService, NewPriceFeed)
//	}
//
// A constructor is any non-variadic function returning (T) or (T, error). It is
// registered under T, its first result type, and its parameter types become
// the dependencies of T.
package ctor

import (
	"errors"
	"reflect"
	"strconv"
)

var errorType = reflect.TypeFor[error]()

// NotAFuncError is returned when a value registered as constructor is not a function.
type NotAFuncError struct{ Got reflect.Type }

// Error implements the error interface.
func (e NotAFuncError) Error() string {
	return "ctor: constructor must be a function, got " + typeName(e.Got)
}

// BadSignatureError is returned for functions that cannot act as constructors.
type BadSignatureError struct {
	Func   reflect.Type
	Reason string
}

// Error implements the error interface.
func (e BadSignatureError) Error() string {
	// Example: ctor: func(int) (int, int) is not a constructor: second result must be error
	return "ctor: " + typeName(e.Func) + " is not a constructor: " + e.Reason
}

// ArityError is returned by Call when the argument count does not match.
type ArityError struct {
	Type reflect.Type
	Want int
	Got  int
}

// Error implements the error interface.
func (e ArityError) Error() string {
	return "ctor: constructor of " + typeName(e.Type) + " takes " + strconv.Itoa(e.Want) +
		" arguments, got " + strconv.Itoa(e.Got)
}

// ErrNilResult is returned by Call when a constructor returns neither a value
// nor an error.
var ErrNilResult = errors.New("ctor: constructor returned nil without an error")

// Constructor is the shape of one registered constructor function.
type Constructor struct {
	// Type is the type the constructor produces.
	Type reflect.Type

	// Params are the parameter types in declaration order.
	Params []reflect.Type

	fn      reflect.Value
	withErr bool
}

// Inspect validates fn and returns its shape.
func Inspect(fn any) (Constructor, error) {
	if fn == nil {
		return Constructor{}, NotAFuncError{}
	}
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return Constructor{}, NotAFuncError{Got: fnType}
	}
	if fnValue.IsNil() {
		return Constructor{}, BadSignatureError{Func: fnType, Reason: "nil function"}
	}
	if fnType.IsVariadic() {
		return Constructor{}, BadSignatureError{Func: fnType, Reason: "variadic functions are not supported"}
	}

	c := Constructor{fn: fnValue}
	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return Constructor{}, BadSignatureError{Func: fnType, Reason: "second result must be error"}
		}
		c.withErr = true
	default:
		return Constructor{}, BadSignatureError{Func: fnType, Reason: "must return (T) or (T, error)"}
	}

	c.Type = fnType.Out(0)
	if c.Type == errorType {
		return Constructor{}, BadSignatureError{Func: fnType, Reason: "first result must not be error"}
	}

	c.Params = make([]reflect.Type, fnType.NumIn())
	for i := range c.Params {
		c.Params[i] = fnType.In(i)
	}
	return c, nil
}

// Arity returns the number of parameters.
func (c Constructor) Arity() int { return len(c.Params) }

// Call invokes the constructor with args in parameter order.
func (c Constructor) Call(args []reflect.Value) (any, error) {
	if len(args) != len(c.Params) {
		return nil, ArityError{Type: c.Type, Want: len(c.Params), Got: len(args)}
	}

	results := c.fn.Call(args)
	if c.withErr && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	if isNil(results[0]) {
		return nil, ErrNilResult
	}
	return results[0].Interface(), nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
