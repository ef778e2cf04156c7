// Command doublegen generates test doubles for Go interfaces.
//
// A double is a struct embedding double.Mock that implements one interface by
// forwarding every method to MethodCalled. doublegen writes them so they never
// have to be maintained by hand, and registers a factory for each from init so
// the suit container can create a fresh double whenever a dependency of that
// interface type is not bound.
//
// Usage
//
//	doublegen --spec <file.double.yaml> --out <file.gen.go> [--source <dir>] [-v]
//
// Typically run through go:generate next to the interfaces:
//
//	//go:generate go run github.com/sghaida/autosuit/cmd/doublegen --spec ./doubles.double.yaml --out ./doubles.gen.go
//
// Spec format (*.double.yaml)
//
//	package: examples
//	source: .            # optional, relative to the spec file
//	doubles:
//	  - interface: Dependency1
//	  - interface: Dependency2
//	    name: FakeDependency2   # optional, defaults to <Interface>Double
//
// JSON specs with the same fields are accepted too.
//
// The source directory is taken from --source, then from the spec's source
// field, and finally defaults to the directory of --out. Test files and
// *.gen.go files are never parsed.
//
// Generated code
//
// For every double:
//
//   - type <Name> struct{ double.Mock }
//   - New<Name>(mode double.Mode) *<Name>
//   - one method per interface method, unpacking results with double.Get
//   - a double.Register call in init
//
// Limitations
//
//   - embedded interfaces must be spelled out method by method
//   - generic interfaces are not supported
//   - method names promoted from double.Mock (On, Reset, Mode, ...) are rejected
//
// Exit codes
//
//	0  doubles written
//	1  generation failed (bad spec, parse error, unsupported interface, write error)
//	2  invalid command line
package main
