package suit_test

import (
	"errors"
	"sync/atomic"

	"github.com/sghaida/autosuit/ctor"
	"github.com/sghaida/autosuit/double"
)

// A and B are the dependencies of the subject S.
type A interface {
	F() int
	Name() string
}

type B interface {
	G(x int) string
}

// Named is satisfied by A doubles without being A.
type Named interface {
	Name() string
}

// Unregistered has no double factory.
type Unregistered interface{ Do() }

// ADouble and BDouble have the shape cmd/doublegen emits.
type ADouble struct {
	double.Mock
}

func NewADouble(mode double.Mode) *ADouble {
	d := &ADouble{}
	double.Init[A](&d.Mock, d, mode, map[string]int{"F": 0, "Name": 0})
	return d
}

func (d *ADouble) F() int {
	ret := d.MethodCalled("F")
	return double.Get[int](ret, 0)
}

func (d *ADouble) Name() string {
	ret := d.MethodCalled("Name")
	return double.Get[string](ret, 0)
}

type BDouble struct {
	double.Mock
}

func NewBDouble(mode double.Mode) *BDouble {
	d := &BDouble{}
	double.Init[B](&d.Mock, d, mode, map[string]int{"G": 1})
	return d
}

func (d *BDouble) G(a0 int) string {
	ret := d.MethodCalled("G", a0)
	return double.Get[string](ret, 0)
}

// realA is a hand-written A.
type realA struct{ n int }

func (r *realA) F() int { return r.n }
func (r *realA) Name() string { return "real" }

// S is the subject of most tests.
type S struct {
	a A
	b B
}

func NewS(a A, b B) *S { return &S{a: a, b: b} }

// Greedy has constructors of different arity.
type Greedy struct{ arity int }

func NewGreedySmall(A) *Greedy { return &Greedy{arity: 1} }
func NewGreedyBig(A, B) *Greedy { return &Greedy{arity: 2} }
func NewGreedyEmpty() *Greedy { return &Greedy{arity: 0} }

// Tie has two constructors of equal arity.
type Tie struct{ first bool }

func NewTieFirst(A) *Tie { return &Tie{first: true} }
func NewTieSecond(B) *Tie { return &Tie{first: false} }

// Flaky fails to build while B answers with an empty string.
type Flaky struct{ tag string }

func NewFlaky(b B) (*Flaky, error) {
	tag := b.G(1)
	if tag == "" {
		return nil, errors.New("empty tag")
	}
	return &Flaky{tag: tag}, nil
}

// Orphan has no constructor.
type Orphan struct{}

// Unbuildable is a Named without constructor.
type Unbuildable struct{}

func (*Unbuildable) Name() string { return "unbuildable" }

// NeedsUnregistered depends on a type without double.
type NeedsUnregistered struct{ u Unregistered }

func NewNeedsUnregistered(u Unregistered) *NeedsUnregistered { return &NeedsUnregistered{u: u} }

// Counted counts how often it is constructed.
type Counted struct{ a A }

var countedBuilds atomic.Int64

func NewCounted(a A) *Counted {
	countedBuilds.Add(1)
	return &Counted{a: a}
}

// Inner is a real Named built from A; Outer depends on Named.
type Inner struct{ a A }

func NewInner(a A) *Inner { return &Inner{a: a} }

func (i *Inner) Name() string { return "inner:" + i.a.Name() }

type Outer struct{ n Named }

func NewOuter(n Named) *Outer { return &Outer{n: n} }

func init() {
	double.Register(func(mode double.Mode) A { return NewADouble(mode) })
	double.Register(func(mode double.Mode) B { return NewBDouble(mode) })

	ctor.MustRegister(
		NewS,
		NewGreedySmall, NewGreedyBig, NewGreedyEmpty,
		NewTieFirst, NewTieSecond,
		NewFlaky,
		NewNeedsUnregistered,
		NewCounted,
		NewInner, NewOuter,
	)
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
