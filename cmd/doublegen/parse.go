package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const doubleImportPath = "github.com/sghaida/autosuit/double"

// reservedMethods are promoted from double.Mock into every generated double.
// An interface method with one of these names would hide the engine's method.
var reservedMethods = map[string]struct{}{
	"AssertCalled":        {},
	"AssertExpectations":  {},
	"AssertNotCalled":     {},
	"AssertNumberOfCalls": {},
	"Called":              {},
	"Double":              {},
	"Expect":              {},
	"InvocationCount":     {},
	"Invocations":         {},
	"IsMethodCallable":    {},
	"MethodCalled":        {},
	"Mode":                {},
	"On":                  {},
	"Reset":               {},
	"Test":                {},
	"Type":                {},
	"View":                {},
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// interfaceSource is an interface declaration with the imports of its file.
type interfaceSource struct {
	spec    *ast.TypeSpec
	imports []ImportSpec
}

// parseInterfaces parses the non-test, non-generated Go files of pkgName in
// dir and returns its interface declarations by name.
func parseInterfaces(dir, pkgName string) (map[string]interfaceSource, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read source dir")
	}

	fileSet := token.NewFileSet()
	found := make(map[string]interfaceSource)

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(dir, fileName)
		parsedFile, err := parser.ParseFile(fileSet, filePath, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", filePath)
		}
		if parsedFile.Name.Name != pkgName {
			continue
		}

		imports := importsOf(parsedFile)
		for _, decl := range parsedFile.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, s := range genDecl.Specs {
				typeSpec := s.(*ast.TypeSpec)
				if _, ok := typeSpec.Type.(*ast.InterfaceType); ok {
					found[typeSpec.Name.Name] = interfaceSource{spec: typeSpec, imports: imports}
				}
			}
		}
	}

	return found, nil
}

// importsOf lists the imports of a parsed file.
func importsOf(file *ast.File) []ImportSpec {
	var imports []ImportSpec
	for _, importDecl := range file.Imports {
		importPath, err := strconv.Unquote(importDecl.Path.Value)
		if err != nil {
			continue
		}
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}
	return imports
}

// ensureImport adds imp unless its path is already imported. The first alias
// seen for a path is the one the generated file uses.
func ensureImport(imports *[]ImportSpec, imp ImportSpec) {
	if slices.ContainsFunc(*imports, func(have ImportSpec) bool { return have.Path == imp.Path }) {
		return
	}
	*imports = append(*imports, imp)
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// importDefaultIdent guesses the package name of an unaliased import from its
// path: the last element, skipping a /vN suffix and a gopkg.in .vN suffix.
func importDefaultIdent(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	importPath = strings.TrimSpace(importPath)
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(base, ".v"); i > 0 && strings.HasPrefix(importPath, "gopkg.in/") {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "_")
}

// lookupImport finds the import a package identifier refers to.
func lookupImport(imports []ImportSpec, ident string) (ImportSpec, bool) {
	for _, imp := range imports {
		if imp.Alias == ident {
			return imp, true
		}
	}
	for _, imp := range imports {
		if imp.Alias == "" && importDefaultIdent(imp.Path) == ident {
			return imp, true
		}
	}
	return ImportSpec{}, false
}

// buildDouble turns an interface declaration into template data and returns
// the imports its method signatures need.
func buildDouble(d DoubleSpec, src interfaceSource) (doubleData, []ImportSpec, error) {
	if src.spec.TypeParams != nil && len(src.spec.TypeParams.List) > 0 {
		return doubleData{}, nil, errors.Errorf("interface %s: generic interfaces are not supported", d.Interface)
	}

	iface := src.spec.Type.(*ast.InterfaceType)
	dd := doubleData{Name: d.Name, Interface: d.Interface}

	var imports []ImportSpec
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			return doubleData{}, nil, errors.Errorf(
				"interface %s: embedded %s is not supported; list its methods explicitly",
				d.Interface, types.ExprString(field.Type),
			)
		}

		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			return doubleData{}, nil, errors.Errorf("interface %s: unsupported element %s", d.Interface, types.ExprString(field.Type))
		}

		used, err := referencedImports(funcType, src.imports)
		if err != nil {
			return doubleData{}, nil, errors.Wrapf(err, "interface %s", d.Interface)
		}
		for _, imp := range used {
			ensureImport(&imports, imp)
		}

		for _, name := range field.Names {
			if _, reserved := reservedMethods[name.Name]; reserved {
				return doubleData{}, nil, errors.Errorf(
					"interface %s: method %s clashes with double.Mock; rename it or write the double by hand",
					d.Interface, name.Name,
				)
			}
			dd.Methods = append(dd.Methods, buildMethod(name.Name, funcType))
		}
	}

	return dd, imports, nil
}

// referencedImports returns the imports of the package selectors used in fn.
func referencedImports(fn *ast.FuncType, imports []ImportSpec) ([]ImportSpec, error) {
	var (
		used []ImportSpec
		err  error
	)
	ast.Inspect(fn, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		imp, ok := lookupImport(imports, ident.Name)
		if !ok {
			err = errors.Errorf("package %s is not imported", ident.Name)
			return false
		}
		ensureImport(&used, imp)
		return false
	})
	return used, err
}

// buildMethod renders one method. Parameters are renamed a0..aN so generated
// code never depends on the names used in the interface.
func buildMethod(name string, fn *ast.FuncType) methodData {
	m := methodData{Name: name}

	var params []string
	if fn.Params != nil {
		for _, field := range fn.Params.List {
			typ := types.ExprString(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				argName := "a" + strconv.Itoa(len(m.Args))
				m.Args = append(m.Args, argName)
				params = append(params, argName+" "+typ)
			}
		}
	}
	m.Arity = len(m.Args)
	m.Params = strings.Join(params, ", ")

	var results, returns []string
	if fn.Results != nil {
		for _, field := range fn.Results.List {
			typ := types.ExprString(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				returns = append(returns, "double.Get["+typ+"](ret, "+strconv.Itoa(len(results))+")")
				results = append(results, typ)
			}
		}
	}

	switch len(results) {
	case 0:
	case 1:
		m.Results = " " + results[0]
	default:
		m.Results = " (" + strings.Join(results, ", ") + ")"
	}
	m.Returns = strings.Join(returns, ", ")

	return m
}
