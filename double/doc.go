// Package double is the test-double engine used by the suit container.
//
// A double is a generated type that embeds Mock and implements one interface.
// Mock stores stubs in a testify mock.Mock and adds what the container needs
// on top of it:
//
//   - Strict and Loose modes. A strict double panics with *UnconfiguredCallError
//     on any call to a method nobody configured; a loose double records every
//     call and returns zero values when no stub accepts its arguments.
//   - A marker capability (Viewer) so any object produced by the engine can be
//     recognized and unwrapped back into its Mock.
//   - Merging setup. Expectations built with When(...).Return(...) are added to
//     the same Mock on every call; configuring the same method with the same
//     arguments again replaces the earlier stub.
//   - A Reset that drops stubs and recorded invocations so a Mock can be reused
//     across test cases.
//
// Doubles are produced by cmd/doublegen and register a factory from init:
//
//	func init() {
//		double.Register(func(mode double.Mode) Clock { return NewClockDouble(mode) })
//	}
//
// after which New[Clock](double.Strict) or Create(reflect.TypeFor[Clock](), mode)
// return fresh doubles.
package double
