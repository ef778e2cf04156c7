package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// outputPerm is the mode of generated files.
const outputPerm os.FileMode = 0o644

// stagedFile is the part of *os.File used while staging output.
type stagedFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// fileOps are the filesystem calls made by writeOutput. Tests swap them to
// force failures.
type fileOps struct {
	stage  func(dir, pattern string) (stagedFile, error)
	chmod  func(path string, mode os.FileMode) error
	rename func(oldpath, newpath string) error
	remove func(path string) error
}

var fsOps = fileOps{
	stage:  func(dir, pattern string) (stagedFile, error) { return os.CreateTemp(dir, pattern) },
	chmod:  os.Chmod,
	rename: os.Rename,
	remove: os.Remove,
}

// writeOutput stages src next to outPath and renames it into place, so a
// go:generate run that fails halfway leaves the previous doubles intact.
func writeOutput(outPath string, src []byte) (err error) {
	staged, err := fsOps.stage(filepath.Dir(outPath), "."+filepath.Base(outPath)+"-*")
	if err != nil {
		return errors.Wrap(err, "stage output")
	}
	stagedPath := staged.Name()

	defer func() {
		if err != nil {
			_ = fsOps.remove(stagedPath)
		}
	}()

	_, err = staged.Write(src)
	if closeErr := staged.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrap(err, "stage output")
	}

	if err = fsOps.chmod(stagedPath, outputPerm); err != nil {
		return errors.Wrap(err, "stage output")
	}
	return errors.Wrap(fsOps.rename(stagedPath, outPath), "replace output")
}
