package main

import "text/template"

// methodData is one rendered interface method.
type methodData struct {
	Name string

	// Params is the parameter list, e.g. "a0 string, a1 ...any".
	Params string
	// Args are the parameter names in order.
	Args  []string
	Arity int

	// Results is the result list with a leading space, or empty.
	Results string
	// Returns unpacks every result from ret.
	Returns string
}

// doubleData is one generated double.
type doubleData struct {
	Name      string
	Interface string
	Methods   []methodData
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package string
	Imports []ImportSpec
	Doubles []doubleData
}

// genTemplate is the Go source template used to generate the doubles. Its
// output is passed through go/format.
var genTemplate = template.Must(
	template.New("doublegen").Parse(`// Code generated by doublegen; DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range $d := .Doubles}}
// {{$d.Name}} is a test double for {{$d.Interface}}.
type {{$d.Name}} struct {
	double.Mock
}

// New{{$d.Name}} returns a {{$d.Name}} in the given mode.
func New{{$d.Name}}(mode double.Mode) *{{$d.Name}} {
	d := &{{$d.Name}}{}
	double.Init[{{$d.Interface}}](&d.Mock, d, mode, map[string]int{
{{- range $d.Methods}}
		"{{.Name}}": {{.Arity}},
{{- end}}
	})
	return d
}
{{range $d.Methods}}
// {{.Name}} implements {{$d.Interface}}.
func (d *{{$d.Name}}) {{.Name}}({{.Params}}){{.Results}} {
	{{if .Returns}}ret := {{end}}d.MethodCalled("{{.Name}}"{{range .Args}}, {{.}}{{end}})
{{- if .Returns}}
	return {{.Returns}}
{{- end}}
}
{{end}}
{{- end}}
func init() {
{{- range .Doubles}}
	double.Register(func(mode double.Mode) {{.Interface}} { return New{{.Name}}(mode) })
{{- end}}
}
`),
)
