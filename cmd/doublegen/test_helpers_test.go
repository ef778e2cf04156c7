package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// clockSource declares interfaces covering aliased imports, unused imports,
// variadic parameters and grouped results.
const clockSource = `package svc

import (
	"context"
	"strings"
	tm "time"
)

type Clock interface {
	Now() tm.Time
	Sleep(ctx context.Context, d tm.Duration) error
	Log(format string, args ...any)
	Pair() (a, b int)
}

type Plain interface {
	Ping()
}

type notAnInterface struct{}

func upper(s string) string { return strings.ToUpper(s) }
`

const clockSpecYAML = `package: svc
doubles:
  - interface: Clock
  - interface: Plain
    name: FakePlain
`

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

//
// -----------------------------------------------------------------------------
// writeOutput() seam helpers
// -----------------------------------------------------------------------------

// failingFile is a staged file whose Write or Close can be made to fail.
type failingFile struct {
	path     string
	writeErr error
	closeErr error
}

func (f *failingFile) Name() string { return f.path }

func (f *failingFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *failingFile) Close() error { return f.closeErr }

// swapFileOps replaces fsOps for the rest of the test. Nil fields keep the
// real implementation.
func swapFileOps(t *testing.T, ops fileOps) {
	t.Helper()

	orig := fsOps
	t.Cleanup(func() { fsOps = orig })

	if ops.stage != nil {
		fsOps.stage = ops.stage
	}
	if ops.chmod != nil {
		fsOps.chmod = ops.chmod
	}
	if ops.rename != nil {
		fsOps.rename = ops.rename
	}
	if ops.remove != nil {
		fsOps.remove = ops.remove
	}
}
