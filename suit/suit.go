package suit

import (
	"reflect"
	"sync"
)

// Provider is a container that owns a subject and can therefore satisfy a
// dependency as a nested container. *Suit[S] and *Nested[T] implement it.
type Provider interface {
	Host

	// IsSubjectBuilt reports whether the subject exists.
	IsSubjectBuilt() bool

	// Reset clears the subject and resets the bindings.
	Reset()

	subjectValue() (any, error)
	subjectType() reflect.Type
}

// Suit is a container owning the subject under test, of type S.
//
// The subject is built lazily by Subject from the constructor registered for S
// in the ctor package. Every constructor parameter is resolved from the suit's
// bindings; unbound parameters get a fresh strict double. Once the subject is
// built the suit refuses new bindings until Reset is called.
//
// A Suit is meant to live for a whole test suite:
//
//	s := suit.New[*examples.MyService]()
//	defer s.Reset()
//
//	_ = suit.Setup[examples.Dependency1](s, double.When("GetNumber").Return("1"))
//	svc := s.MustSubject()
type Suit[S any] struct {
	*Container

	mu      sync.Mutex
	subject S
	built   bool
}

// New returns an empty suit for the subject type S.
func New[S any]() *Suit[S] {
	s := &Suit[S]{Container: NewContainer()}
	s.Container.commit = s.commit
	return s
}

// commit stores a binding unless the subject is built. It shares the lock
// with Subject, so a binding is never stored while the subject is being built.
func (s *Suit[S]) commit(t reflect.Type, store func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built {
		return AlreadyBuiltError{Subject: reflect.TypeFor[S](), Type: t}
	}
	store()
	return nil
}

// Subject returns the subject, building it on first use. A failed build is
// not cached; the next call tries again.
func (s *Suit[S]) Subject() (S, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built {
		return s.subject, nil
	}

	var zero S
	typ := reflect.TypeFor[S]()

	shape, err := constructorShapeFor(typ)
	if err != nil {
		return zero, err
	}

	args := make([]reflect.Value, len(shape.Params))
	for i, p := range shape.Params {
		v, err := s.Container.dependency(p)
		if err != nil {
			return zero, ConstructionError{Type: typ, Op: "resolve " + typeName(p) + " for", Err: err}
		}
		args[i] = reflect.ValueOf(v)
	}

	obj, err := shape.Call(args)
	if err != nil {
		return zero, ConstructionError{Type: typ, Op: "construct", Err: err}
	}

	s.subject = cast[S](obj)
	s.built = true
	return s.subject, nil
}

// MustSubject is like Subject but panics on error.
func (s *Suit[S]) MustSubject() S {
	v, err := s.Subject()
	if err != nil {
		panic(err)
	}
	return v
}

// IsSubjectBuilt reports whether Subject has produced a value since the last
// Reset.
func (s *Suit[S]) IsSubjectBuilt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.built
}

// Reset drops the subject, then resets the bindings the way Container.Reset
// does. The suit accepts bindings again afterwards.
func (s *Suit[S]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero S
	s.subject = zero
	s.built = false
	s.Container.Reset()
}

func (s *Suit[S]) subjectValue() (any, error) {
	v, err := s.Subject()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Suit[S]) subjectType() reflect.Type { return reflect.TypeFor[S]() }
