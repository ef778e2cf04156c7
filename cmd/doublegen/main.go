// cmd/doublegen/main.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const usage = "usage: doublegen --spec <file.double.yaml> --out <file.gen.go>"

// options holds the parsed command line.
type options struct {
	specPath string
	outPath  string
	source   string
	verbose  bool
}

// generateError marks failures that happen after the command line was accepted.
type generateError struct{ err error }

func (e generateError) Error() string { return e.err.Error() }

func (e generateError) Unwrap() error { return e.err }

// newRootCmd builds the doublegen command. Logs go to log.
func newRootCmd(log *logrus.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "doublegen",
		Short:         "Generate test doubles for Go interfaces",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			if err := generate(opts, log); err != nil {
				return generateError{err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.specPath, "spec", "", "path to the *.double.yaml spec")
	flags.StringVar(&opts.outPath, "out", "", "output .gen.go file path")
	flags.StringVar(&opts.source, "source", "", "directory holding the interfaces (overrides the spec)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every generated double")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// newLogger returns the generator's logger writing to out.
func newLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

// run executes the generator and returns an exit code: 0 on success, 1 when
// generation fails and 2 for command line errors.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	log := newLogger(stderr)

	cmd := newRootCmd(log)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var genErr generateError
	if errors.As(err, &genErr) {
		log.WithError(genErr.err).Error("generation failed")
		return 1
	}

	_, _ = fmt.Fprintln(stderr, "doublegen: "+err.Error())
	_, _ = fmt.Fprintln(stderr, usage)
	return 2
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// generate produces the output file described by opts.
func generate(opts *options, log *logrus.Logger) error {
	spec, err := loadSpec(opts.specPath)
	if err != nil {
		return err
	}

	outPath := filepath.Clean(opts.outPath)
	sourceDir := resolveSourceDir(opts, &spec, outPath)
	log.WithField("source", sourceDir).Debug("parsing package")

	interfaces, err := parseInterfaces(sourceDir, spec.Package)
	if err != nil {
		return err
	}

	data := templateData{
		Package: spec.Package,
		Imports: []ImportSpec{{Path: doubleImportPath}},
	}

	for _, d := range spec.Doubles {
		entry := log.WithField("interface", d.Interface)

		src, ok := interfaces[d.Interface]
		if !ok {
			return errors.Errorf("interface %s not found in package %s (%s)", d.Interface, spec.Package, sourceDir)
		}

		dd, imports, err := buildDouble(d, src)
		if err != nil {
			return err
		}
		for _, imp := range imports {
			ensureImport(&data.Imports, imp)
		}
		data.Doubles = append(data.Doubles, dd)

		entry.WithField("double", dd.Name).WithField("methods", len(dd.Methods)).Debug("double built")
	}

	source, err := render(data)
	if err != nil {
		return err
	}

	if err := writeOutput(outPath, source); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}

	log.WithField("out", outPath).WithField("doubles", len(data.Doubles)).Info("doubles written")
	return nil
}

// resolveSourceDir picks the directory to parse: --source, then the spec's
// source relative to the spec file, then the output directory.
func resolveSourceDir(opts *options, spec *Spec, outPath string) string {
	if opts.source != "" {
		return filepath.Clean(opts.source)
	}
	if spec.Source != "" {
		if filepath.IsAbs(spec.Source) {
			return filepath.Clean(spec.Source)
		}
		return filepath.Join(filepath.Dir(opts.specPath), spec.Source)
	}
	return filepath.Dir(outPath)
}

// render executes the template and formats the result.
func render(data templateData) ([]byte, error) {
	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated code")
	}
	return formatted, nil
}
