package suit

import "reflect"

// Nested is a typed view over a nested container whose subject satisfies the
// dependency type T. Bindings of the nested container are reached by passing
// the Nested itself as the Host:
//
//	n, _ := suit.NestedOf[examples.Dependency1](s)
//	_ = suit.Setup[examples.Dependency2](n, double.When("Action2").Return("42"))
type Nested[T any] struct {
	p Provider
}

// Subject returns the nested subject as T, building it on first use.
func (n *Nested[T]) Subject() (T, error) {
	v, err := n.p.subjectValue()
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v), nil
}

// MustSubject is like Subject but panics on error.
func (n *Nested[T]) MustSubject() T {
	v, err := n.Subject()
	if err != nil {
		panic(err)
	}
	return v
}

// IsSubjectBuilt reports whether the nested subject exists.
func (n *Nested[T]) IsSubjectBuilt() bool { return n.p.IsSubjectBuilt() }

// Reset resets the nested container, dropping its subject.
func (n *Nested[T]) Reset() { n.p.Reset() }

// Provider returns the underlying container.
func (n *Nested[T]) Provider() Provider { return n.p }

func (n *Nested[T]) container() *Container { return n.p.container() }

func (n *Nested[T]) subjectValue() (any, error) { return n.p.subjectValue() }

func (n *Nested[T]) subjectType() reflect.Type { return n.p.subjectType() }
