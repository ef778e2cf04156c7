package double

import (
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mode selects how a double answers calls that were never configured.
type Mode int

const (
	// Strict doubles panic with *UnconfiguredCallError on unconfigured calls.
	Strict Mode = iota

	// Loose doubles return zero values for calls no stub accepts.
	Loose
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Loose:
		return "loose"
	default:
		return "unknown"
	}
}

// Viewer is the marker capability of every object produced by the engine.
//
// Generated doubles get it by embedding Mock, so a double passed around as
// its interface can still be unwrapped to the Mock controlling it.
type Viewer interface {
	Double() *Mock
}

// Invocation is one recorded call on a double.
type Invocation struct {
	Method string
	Args   []any
}

// String renders the invocation as Method(arg, ...).
func (i Invocation) String() string {
	return i.Method + "(" + formatArgs(i.Args) + ")"
}

// Mock is the control surface of a double.
//
// It embeds testify's mock.Mock, so On, AssertCalled, AssertExpectations and
// friends are available as usual. The zero value is not a usable double until
// Init has been called on it.
type Mock struct {
	mock.Mock

	mu      sync.Mutex
	typ     reflect.Type
	view    any
	mode    Mode
	methods map[string]int

	// stubs holds calls registered through Expect, used to replace earlier
	// stubs for the same method and arguments.
	stubs []*mock.Call
	calls []Invocation
}

// Init binds m to the object it controls.
//
// view is the double as seen through T, mode picks strict or loose behavior and
// methods maps every method of T to its parameter count. A nil methods map
// disables method-name validation in Expect.
func Init[T any](m *Mock, view T, mode Mode, methods map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.typ = reflect.TypeFor[T]()
	m.view = view
	m.mode = mode
	m.methods = methods
}

// Double implements Viewer.
func (m *Mock) Double() *Mock { return m }

// Type returns the dependency type the double was created for.
func (m *Mock) Type() reflect.Type {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.typ
}

// Mode returns the double's mode.
func (m *Mock) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// View returns the object that implements the dependency type.
func (m *Mock) View() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// On registers a stub for method and returns the testify call to finish it
// with Return, Run, Once and so on. Stubs added through On are matched after
// the ones added through Expect.
func (m *Mock) On(method string, args ...any) *mock.Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Mock.On(method, args...)
}

// Expect applies expectations to the double, merging them with any stubs
// already present.
//
// An expectation for the same method and arguments as an earlier one takes
// its place; any other expectation is matched before every existing stub.
// Expect is not safe to call while the double is being called.
func (m *Mock) Expect(exps ...Expectation) error {
	for _, e := range exps {
		if err := m.expect(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mock) expect(e Expectation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	args := e.args
	if m.methods != nil {
		arity, ok := m.methods[e.method]
		if !ok {
			return UnknownMethodError{Type: m.typ, Method: e.method}
		}
		if len(args) == 0 && arity > 0 {
			args = anything(arity)
		}
	}

	var stale []*mock.Call
	kept := m.stubs[:0]
	for _, call := range m.stubs {
		if call.Method == e.method && sameArgs(call.Arguments, args) {
			stale = append(stale, call)
			continue
		}
		kept = append(kept, call)
	}

	call := m.Mock.On(e.method, args...).Return(e.returns...)
	m.Mock.ExpectedCalls = placeStub(m.Mock.ExpectedCalls, call, stale)
	m.stubs = append(kept, call)
	return nil
}

// placeStub returns calls with call, appended last by testify, moved into the
// slot of the first stale stub, or to the front when it replaces nothing.
// Stale stubs are removed by identity; stubs with other arguments stay.
func placeStub(calls []*mock.Call, call *mock.Call, stale []*mock.Call) []*mock.Call {
	out := make([]*mock.Call, 0, len(calls))
	placed := len(stale) == 0
	if placed {
		out = append(out, call)
	}
	for _, c := range calls {
		if c == call {
			continue
		}
		if slices.Contains(stale, c) {
			if !placed {
				out = append(out, call)
				placed = true
			}
			continue
		}
		out = append(out, c)
	}
	if !placed {
		out = append(out, call)
	}
	return out
}

// MethodCalled records the invocation and answers it.
//
// Generated doubles call it from every method. A strict double panics when
// method has no stub at all; a call to a stubbed method is matched by testify
// and a failed match is reported by testify unchanged. A loose double returns
// zero values whenever no stub matches the arguments.
func (m *Mock) MethodCalled(method string, args ...any) mock.Arguments {
	m.mu.Lock()
	m.calls = append(m.calls, Invocation{Method: method, Args: args})
	mode, typ := m.mode, m.typ
	var answered bool
	if mode == Loose {
		answered = m.matchesLocked(method, args)
	} else {
		answered = m.stubbedLocked(method)
	}
	m.mu.Unlock()

	if !answered {
		if mode == Loose {
			return nil
		}
		panic(&UnconfiguredCallError{Type: typ, Method: method, Args: args})
	}
	return m.Mock.MethodCalled(method, args...)
}

// stubbedLocked reports whether any stub exists for method, including stubs
// added through testify directly such as chained Call.On. Must hold m.mu.
func (m *Mock) stubbedLocked(method string) bool {
	for _, call := range m.Mock.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// matchesLocked reports whether a stub that is not used up accepts args.
// Must hold m.mu.
func (m *Mock) matchesLocked(method string, args []any) bool {
	for _, call := range m.Mock.ExpectedCalls {
		if call.Method != method || call.Repeatability < 0 {
			continue
		}
		if _, diffs := call.Arguments.Diff(args); diffs == 0 {
			return true
		}
	}
	return false
}

// Invocations returns a copy of the recorded calls in call order.
func (m *Mock) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Invocation, len(m.calls))
	copy(out, m.calls)
	return out
}

// InvocationCount returns the number of recorded calls.
func (m *Mock) InvocationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset drops every stub and recorded invocation. Type, view and mode are kept.
// Reset is not safe to call while the double is being called.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Mock.ExpectedCalls = nil
	m.Mock.Calls = nil
	m.stubs = nil
	m.calls = nil
}

// Double is a typed handle over a Mock created for the dependency type T.
type Double[T any] struct {
	*Mock
}

// Object returns the double as T.
func (d Double[T]) Object() T {
	var zero T
	if d.Mock == nil {
		return zero
	}
	v, ok := d.View().(T)
	if !ok {
		return zero
	}
	return v
}

// ViewOf reports whether obj was produced by the engine and returns its Mock.
// Uninitialized Mocks and nil pointers are not views.
func ViewOf(obj any) (*Mock, bool) {
	v, ok := obj.(Viewer)
	if !ok || isNilPointer(obj) {
		return nil, false
	}
	m := v.Double()
	if m == nil || m.View() == nil {
		return nil, false
	}
	return m, true
}

// Get returns result i of a stubbed call as T. Missing or nil results yield
// the zero value, which is what loose doubles return for unconfigured calls.
func Get[T any](args mock.Arguments, i int) T {
	var zero T
	if i >= len(args) || args[i] == nil {
		return zero
	}
	v, ok := args[i].(T)
	if !ok {
		panic("double: result " + strconv.Itoa(i) + " has type " + reflect.TypeOf(args[i]).String() +
			", want " + reflect.TypeFor[T]().String())
	}
	return v
}

func anything(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = mock.Anything
	}
	return out
}

func sameArgs(a, b []any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return assert.ObjectsAreEqual(a, b)
}

func isNilPointer(obj any) bool {
	rv := reflect.ValueOf(obj)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
