package main

import (
	"go/token"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DoubleSpec names one interface to generate a double for.
type DoubleSpec struct {
	// Interface is the interface type name in the package.
	Interface string `yaml:"interface"`

	// Name is the generated type name. Defaults to <Interface>Double.
	Name string `yaml:"name"`
}

// Spec is the full input schema consumed by the generator. JSON specs are
// accepted as well since YAML is a superset of JSON.
type Spec struct {
	Package string `yaml:"package"`

	// Source is the directory holding the interfaces, relative to the spec
	// file. Defaults to the output directory.
	Source string `yaml:"source"`

	Doubles []DoubleSpec `yaml:"doubles"`
}

// loadSpec reads, decodes and validates the spec at specPath.
func loadSpec(specPath string) (Spec, error) {
	raw, err := os.ReadFile(specPath)
	if err != nil {
		return Spec{}, errors.Wrap(err, "read spec")
	}

	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return Spec{}, errors.Wrapf(err, "decode spec %s", specPath)
	}

	if err := validateSpec(&spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// validateSpec checks the spec and fills default double names.
func validateSpec(spec *Spec) error {
	var missingFields []string

	if strings.TrimSpace(spec.Package) == "" {
		missingFields = append(missingFields, "package")
	}
	if len(spec.Doubles) == 0 {
		missingFields = append(missingFields, "doubles (must have at least 1)")
	}
	if len(missingFields) > 0 {
		return errors.Errorf("spec missing required fields: %v", missingFields)
	}

	if !token.IsIdentifier(spec.Package) {
		return errors.Errorf("package %q is not a valid identifier", spec.Package)
	}

	seenNames := make(map[string]struct{}, len(spec.Doubles))
	for i := range spec.Doubles {
		d := &spec.Doubles[i]

		if !token.IsIdentifier(d.Interface) {
			return errors.Errorf("doubles[%d]: interface %q is not a valid identifier", i, d.Interface)
		}
		if d.Name == "" {
			d.Name = d.Interface + "Double"
		}
		if !token.IsIdentifier(d.Name) {
			return errors.Errorf("doubles[%d]: name %q is not a valid identifier", i, d.Name)
		}
		if _, ok := seenNames[d.Name]; ok {
			return errors.Errorf("duplicate double name: %s", d.Name)
		}
		seenNames[d.Name] = struct{}{}
	}
	return nil
}
