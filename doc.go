// Package autosuit provides auto-wiring containers for unit tests.
//
// A test names the type it wants to test and the container builds it,
// satisfying every constructor parameter with a strict test double unless the
// test bound something else. Tests then program only the doubles they care
// about; any call nobody configured fails loudly.
//
// Packages:
//   - double: the test double engine (strict and loose doubles on testify/mock)
//   - ctor: the constructor registry the container builds subjects from
//   - suit: the container (Suit, nested containers, bindings, Reset)
//   - cmd/doublegen: code generator for doubles from *.double.yaml specs
//   - examples: an end-to-end example with a testify suite
package autosuit
