package ctor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/autosuit/ctor"
)

type store struct{ dsn string }

type service struct {
	st   *store
	name string
}

func newStore() *store { return &store{dsn: "mem"} }

func newService(st *store, name string) *service { return &service{st: st, name: name} }

func newServiceErr(st *store) (*service, error) {
	if st == nil {
		return nil, errors.New("store required")
	}
	return &service{st: st}, nil
}

func newNilService() *service { return nil }

//
// -----------------------------------------------------------------------------
// Inspect
// -----------------------------------------------------------------------------

// TestInspect_ValidShapes verifies produced type and parameter types are taken from the signature.
func TestInspect_ValidShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     any
		typ    reflect.Type
		params []reflect.Type
	}{
		{
			name:   "no params",
			fn:     newStore,
			typ:    reflect.TypeFor[*store](),
			params: []reflect.Type{},
		},
		{
			name:   "two params",
			fn:     newService,
			typ:    reflect.TypeFor[*service](),
			params: []reflect.Type{reflect.TypeFor[*store](), reflect.TypeFor[string]()},
		},
		{
			name:   "with error",
			fn:     newServiceErr,
			typ:    reflect.TypeFor[*service](),
			params: []reflect.Type{reflect.TypeFor[*store]()},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := ctor.Inspect(tc.fn)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, c.Type)
			assert.Equal(t, tc.params, c.Params)
			assert.Equal(t, len(tc.params), c.Arity())
		})
	}
}

// TestInspect_Rejects verifies functions that cannot act as constructors are refused.
func TestInspect_Rejects(t *testing.T) {
	t.Parallel()

	var nilFunc func() *store

	tests := []struct {
		name   string
		fn     any
		reason string
	}{
		{name: "variadic", fn: func(...int) *store { return nil }, reason: "variadic"},
		{name: "no results", fn: func() {}, reason: "must return (T) or (T, error)"},
		{name: "three results", fn: func() (int, int, error) { return 0, 0, nil }, reason: "must return (T) or (T, error)"},
		{name: "second not error", fn: func() (int, int) { return 0, 0 }, reason: "second result must be error"},
		{name: "error first", fn: func() error { return nil }, reason: "first result must not be error"},
		{name: "nil func", fn: nilFunc, reason: "nil function"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ctor.Inspect(tc.fn)
			var bad ctor.BadSignatureError
			require.True(t, errors.As(err, &bad), "got %v", err)
			assert.Contains(t, bad.Reason, tc.reason)
			assert.Contains(t, err.Error(), "is not a constructor")
		})
	}
}

// TestInspect_NotAFunc verifies non-function values are refused.
func TestInspect_NotAFunc(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, 42, &store{}} {
		_, err := ctor.Inspect(v)
		var naf ctor.NotAFuncError
		require.True(t, errors.As(err, &naf), "value %v", v)
	}

	_, err := ctor.Inspect(42)
	assert.Equal(t, "ctor: constructor must be a function, got int", err.Error())
}

//
// -----------------------------------------------------------------------------
// Call
// -----------------------------------------------------------------------------

// TestCall_PassesArgsInOrder verifies Call forwards arguments and returns the value.
func TestCall_PassesArgsInOrder(t *testing.T) {
	t.Parallel()

	c, err := ctor.Inspect(newService)
	require.NoError(t, err)

	st := &store{dsn: "x"}
	got, err := c.Call([]reflect.Value{reflect.ValueOf(st), reflect.ValueOf("svc")})
	require.NoError(t, err)

	svc, ok := got.(*service)
	require.True(t, ok)
	assert.Same(t, st, svc.st)
	assert.Equal(t, "svc", svc.name)
}

// TestCall_Errors verifies the failure modes of Call.
func TestCall_Errors(t *testing.T) {
	t.Parallel()

	withErr, err := ctor.Inspect(newServiceErr)
	require.NoError(t, err)

	_, err = withErr.Call([]reflect.Value{reflect.Zero(reflect.TypeFor[*store]())})
	require.EqualError(t, err, "store required")

	_, err = withErr.Call(nil)
	var arity ctor.ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 0, arity.Got)

	nilRes, err := ctor.Inspect(newNilService)
	require.NoError(t, err)
	_, err = nilRes.Call(nil)
	assert.ErrorIs(t, err, ctor.ErrNilResult)
}
