package fs

import (
	"os"
	"sync"
	"syscall"
)

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no fault. This is the zero value, so untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky - the path has a "bad sector" and always returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes - filesystem is read-only, returns EROFS.
	PathReadOnly
	// PathNoPermission fails every operation on the path with EACCES.
	PathNoPermission
)

// Chaos wraps an [FS] and fails operations on paths that were marked with
// [Chaos.SetPathState]. Unmarked paths pass through unchanged.
//
// Chaos is safe for concurrent use.
type Chaos struct {
	fs FS

	mu    sync.Mutex
	paths map[string]PathState
	calls map[string]int
}

// NewChaos wraps fsys. Panics if fsys is nil.
func NewChaos(fsys FS) *Chaos {
	if fsys == nil {
		panic("fs is nil")
	}

	return &Chaos{
		fs:    fsys,
		paths: make(map[string]PathState),
		calls: make(map[string]int),
	}
}

// SetPathState marks path with state. [PathNormal] clears the mark.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.paths, path)

		return
	}

	c.paths[path] = state
}

// Calls returns how often op was invoked, injected or not.
func (c *Chaos) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls[op]
}

func (c *Chaos) fault(op, path string, write bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls[op]++

	switch c.paths[path] {
	case PathIOError:
		return injectPathError(op, path, syscall.EIO)
	case PathReadOnly:
		if write {
			return injectPathError(op, path, syscall.EROFS)
		}
	case PathNoPermission:
		return injectPathError(op, path, syscall.EACCES)
	case PathNormal:
	}

	return nil
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.fault("read", path, false); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.fault("write", path, true); err != nil {
		return err
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if err := c.fault("mkdir", path, true); err != nil {
		return err
	}

	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.fault("stat", path, false); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

var _ FS = (*Chaos)(nil)
