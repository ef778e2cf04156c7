package double_test

import "github.com/sghaida/autosuit/double"

// Greeter is the interface the test doubles below implement.
type Greeter interface {
	Greet(name string) string
	Count() int
	Log(format string, args ...any)
}

// GreeterDouble has the shape cmd/doublegen emits.
type GreeterDouble struct {
	double.Mock
}

func NewGreeterDouble(mode double.Mode) *GreeterDouble {
	d := &GreeterDouble{}
	double.Init[Greeter](&d.Mock, d, mode, map[string]int{
		"Greet": 1,
		"Count": 0,
		"Log":   2,
	})
	return d
}

func (d *GreeterDouble) Greet(a0 string) string {
	ret := d.MethodCalled("Greet", a0)
	return double.Get[string](ret, 0)
}

func (d *GreeterDouble) Count() int {
	ret := d.MethodCalled("Count")
	return double.Get[int](ret, 0)
}

func (d *GreeterDouble) Log(a0 string, a1 ...any) {
	d.MethodCalled("Log", a0, a1)
}

func init() {
	double.Register(func(mode double.Mode) Greeter { return NewGreeterDouble(mode) })
}

// Unregistered has no factory.
type Unregistered interface{ Do() }

// Broken has a factory that returns a plain value instead of a double.
type Broken interface{ Do() }

type brokenImpl struct{}

func (brokenImpl) Do() {}

func init() {
	double.Register(func(double.Mode) Broken { return brokenImpl{} })
}

// unconfiguredCall runs fn and returns the strict-double failure it raised.
func unconfiguredCall(fn func()) (err *double.UnconfiguredCallError) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if e, ok := rec.(*double.UnconfiguredCallError); ok {
			err = e
			return
		}
		panic(rec)
	}()
	fn()
	return nil
}
