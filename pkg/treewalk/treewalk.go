package treewalk

import (
	"fmt"
	"os"
	"path/filepath"
)

// RemoveFunc removes one filesystem entry. For directory hooks, an
// error on the first attempt means "not removable yet" and triggers
// the walker's retry; an error on the second attempt is fatal.
type RemoveFunc func(path string) error

// Options configures a Walker. Nil hooks fall back to os.Remove.
type Options struct {
	// RemoveFile is called for every non-directory entry (regular
	// files and symlinks; symlinks are not followed).
	RemoveFile RemoveFunc

	// RemoveDir is called for every directory, under the
	// retry-on-failure contract described in the package comment.
	RemoveDir RemoveFunc

	// MaxDepth limits recursion depth. Zero selects DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth guards against runaway recursion from filesystem
// loops the Lstat check cannot see.
const DefaultMaxDepth = 512

// Walker removes a tree depth-first through its hooks.
type Walker struct {
	removeFile RemoveFunc
	removeDir  RemoveFunc
	maxDepth   int
}

// New creates a walker. opts may be nil.
func New(opts *Options) *Walker {
	w := &Walker{
		removeFile: os.Remove,
		removeDir:  os.Remove,
		maxDepth:   DefaultMaxDepth,
	}
	if opts != nil {
		if opts.RemoveFile != nil {
			w.removeFile = opts.RemoveFile
		}
		if opts.RemoveDir != nil {
			w.removeDir = opts.RemoveDir
		}
		if opts.MaxDepth > 0 {
			w.maxDepth = opts.MaxDepth
		}
	}
	return w
}

// RemoveTree removes root and everything below it. The first hook
// error (after the directory retry) aborts the walk and is returned.
func (w *Walker) RemoveTree(root string) error {
	return w.removePath(root, 0)
}

func (w *Walker) removePath(path string, depth int) error {
	if depth > w.maxDepth {
		return fmt.Errorf("max traversal depth %d exceeded at %s", w.maxDepth, path)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("lstat %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.removeFile(path)
	}

	// First attempt. The hook may refuse because children still exist.
	if err := w.removeDir(path); err == nil {
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", path, err)
	}
	for _, entry := range entries {
		if err := w.removePath(filepath.Join(path, entry.Name()), depth+1); err != nil {
			return err
		}
	}

	// Second attempt, children gone. Failure is now fatal.
	return w.removeDir(path)
}
