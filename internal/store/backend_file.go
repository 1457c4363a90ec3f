package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/jobtrack/internal/fs"
)

const (
	dataDirPerms  = 0o750
	dataFilePerms = 0o600
)

// FileBackend stores each key as <dir>/<key>.json, written atomically.
type FileBackend struct {
	fs  fs.FS
	dir string
}

// NewFileBackend returns a backend rooted at dir. The directory is created
// on the first Put. Panics if fsys is nil.
func NewFileBackend(fsys fs.FS, dir string) *FileBackend {
	if fsys == nil {
		panic("fs is nil")
	}

	return &FileBackend{fs: fsys, dir: filepath.Clean(dir)}
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(b.dir, key+".json"), nil
}

// Get implements [Backend].
func (b *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := b.Path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := b.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	return data, true, nil
}

// Put implements [Backend].
func (b *FileBackend) Put(_ context.Context, key string, value []byte) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}

	err = b.fs.MkdirAll(b.dir, dataDirPerms)
	if err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	err = b.fs.WriteFileAtomic(path, value, dataFilePerms)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Close implements [Backend]. FileBackend holds no open handles.
func (b *FileBackend) Close() error {
	return nil
}

var _ Backend = (*FileBackend)(nil)
