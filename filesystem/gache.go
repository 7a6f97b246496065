package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// GacheFs lets gache caches read and write through the active backend.
// Truncating writes go to a temporary sibling that replaces the target on Close.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if flag&os.O_TRUNC == 0 {
		return API().OpenFile(name, flag, perm)
	}

	tmp, err := API().TempFile(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return nil, err
	}

	if err := API().Chmod(tmp.Name(), perm); err != nil {
		_ = tmp.Close()
		_ = API().Remove(tmp.Name())
		return nil, err
	}

	return &replaceOnClose{File: tmp, target: name}, nil
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

type replaceOnClose struct {
	afero.File
	target string
}

func (f *replaceOnClose) Close() error {
	if err := f.File.Close(); err != nil {
		_ = API().Remove(f.Name())
		return err
	}

	return API().Rename(f.Name(), f.target)
}
