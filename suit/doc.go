// Package suit provides an auto-wiring container for unit tests.
//
// A Suit[S] owns the subject under test. Its constructor is taken from the
// ctor registry, and every constructor parameter is satisfied by one of three
// binding kinds:
//
//   - a double (the default): unbound dependencies get a fresh strict double
//     from the double package, so any call nobody configured fails the test
//   - an instance: a real object bound with BindInstance
//   - a nested container: another Suit whose subject is built on demand and
//     injected, bound with BindNested or BindNewNested
//
// The subject is built on the first Subject call and cached. From then on the
// suit refuses new bindings with AlreadyBuiltError until Reset is called.
//
// Reset prepares a suit for the next test case without recreating it:
//
//   - doubles are kept but lose their stubs and call history
//   - nested containers are kept and reset recursively
//   - instances are dropped, so the next access yields a fresh double
//
// Typical use with testify:
//
//	s := suit.New[*MyService]()
//	t.Cleanup(s.Reset)
//
//	require.NoError(t, suit.Setup[Dependency1](s, double.When("GetNumber").Return("1")))
//	n, err := s.MustSubject().ParseNumberFromDependency()
//
// Import
//
//	"github.com/sghaida/autosuit/suit"
package suit
