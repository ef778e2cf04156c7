package double

// Expectation programs one member of a double: calling method with args
// returns the given values.
//
// It is the typed replacement for "member == value" predicates:
//
//	err := d.Expect(
//		double.When("GetNumber").Return("1"),
//		double.When("SomethingElse").Return(2),
//	)
//
// When args are omitted for a method that takes parameters, any arguments match.
type Expectation struct {
	method  string
	args    []any
	returns []any
}

// When starts an expectation for method called with args.
func When(method string, args ...any) Expectation {
	return Expectation{method: method, args: args}
}

// Return sets the values the call returns, in result order.
func (e Expectation) Return(values ...any) Expectation {
	e.returns = values
	return e
}

// Method returns the configured method name.
func (e Expectation) Method() string { return e.method }
