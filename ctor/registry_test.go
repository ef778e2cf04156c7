package ctor_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/autosuit/ctor"
)

//
// -----------------------------------------------------------------------------
// NewRegistry / Register
// -----------------------------------------------------------------------------

// TestNewRegistry_Empty verifies a new registry knows no types.
func TestNewRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := ctor.NewRegistry()
	require.NotNil(t, r)
	assert.False(t, r.Has(reflect.TypeFor[*store]()))
	assert.Empty(t, r.For(reflect.TypeFor[*store]()))
}

// TestRegister_KeepsRegistrationOrder verifies constructors are listed per type in order.
func TestRegister_KeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := ctor.NewRegistry()
	require.NoError(t, r.Register(newService, newStore))
	require.NoError(t, r.Register(newServiceErr))

	got := r.For(reflect.TypeFor[*service]())
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Arity())
	assert.Equal(t, 1, got[1].Arity())

	assert.True(t, r.Has(reflect.TypeFor[*store]()))
}

// TestRegister_AllOrNothing verifies an invalid function prevents the whole batch.
func TestRegister_AllOrNothing(t *testing.T) {
	t.Parallel()

	r := ctor.NewRegistry()
	err := r.Register(newStore, "not a func")

	var naf ctor.NotAFuncError
	require.True(t, errors.As(err, &naf))
	assert.False(t, r.Has(reflect.TypeFor[*store]()))
}

// TestFor_ReturnsCopy verifies callers cannot modify the stored list.
func TestFor_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := ctor.NewRegistry().MustRegister(newStore)

	list := r.For(reflect.TypeFor[*store]())
	list[0] = ctor.Constructor{}

	assert.Equal(t, reflect.TypeFor[*store](), r.For(reflect.TypeFor[*store]())[0].Type)
}

// TestRegister_RecoversFromPanic verifies Register converts internal panics into errors.
// We trigger a panic via a nil receiver, which panics when locking r.mu.
func TestRegister_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	var r *ctor.Registry // nil receiver

	err := r.Register(newStore)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ctor.ErrRegistryPanic), "expected ErrRegistryPanic wrapping, got: %v", err)
	assert.Contains(t, err.Error(), "ctor: panic during Register")
}

//
// -----------------------------------------------------------------------------
// MustRegister / Default
// -----------------------------------------------------------------------------

// TestMustRegister_PanicsOnInvalid verifies MustRegister panics with the validation error.
func TestMustRegister_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.PanicsWithError(t, "ctor: constructor must be a function, got int", func() {
		ctor.NewRegistry().MustRegister(1)
	})
}

type defaultOnly struct{}

func newDefaultOnly() *defaultOnly { return &defaultOnly{} }

// TestDefault_PackageFunctions verifies the package-level helpers use Default.
func TestDefault_PackageFunctions(t *testing.T) {
	t.Parallel()

	require.NoError(t, ctor.Register(newDefaultOnly))
	assert.True(t, ctor.Default.Has(reflect.TypeFor[*defaultOnly]()))
	assert.Len(t, ctor.For(reflect.TypeFor[*defaultOnly]()), 1)

	assert.Panics(t, func() { ctor.MustRegister(nil) })
}
