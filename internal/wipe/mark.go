package wipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// markState tracks directories that refused their first removal
// attempt and are awaiting the walker's second visit. One state value
// is created per tree-removal invocation and captured by that
// invocation's hook closures, so unrelated removals stay independent.
// The map is still guarded for the case of overlapping trees sharing
// a state.
type markState struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func newMarkState() *markState {
	return &markState{pending: make(map[string]struct{})}
}

func (m *markState) tracked(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[path]
	return ok
}

func (m *markState) track(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[path] = struct{}{}
}

func (m *markState) clear(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, path)
}

func (m *markState) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// markDirHook implements the two-phase empty-check for directories. A
// directory has no bytes to overwrite; the only work is forcing the
// walker to empty it before it is unlinked.
//
// First visit, non-empty: remember the path and fail with
// ErrNotYetRemovable so the walker processes the children and comes
// back. Second visit (or a first visit that is already empty): emit
// the mark event and remove the directory. A tracked directory that is
// still non-empty on its revisit means the walker broke its retry
// contract.
func (e *Engine) markDirHook(state *markState) func(path string) error {
	return func(path string) error {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", path, err)
		}
		if len(entries) > 0 {
			if state.tracked(path) {
				return fmt.Errorf("%s still non-empty on revisit: %w", path, ErrProtocolViolation)
			}
			state.track(path)
			return fmt.Errorf("%s: %w", path, ErrNotYetRemovable)
		}
		state.clear(path)
		e.emit(EventMark, path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("rmdir %s: %w", path, err)
		}
		return nil
	}
}

// renameDirHook is the secure standard's directory handling: rename to
// a random name, then remove. No mark bookkeeping is needed, but the
// hook must not rename while children remain, or the walker's retry
// would re-list a path that no longer exists. A non-empty directory
// just refuses, which drives the retry.
func (e *Engine) renameDirHook() func(path string) error {
	return func(path string) error {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", path, err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("%s: %w", path, ErrNotYetRemovable)
		}
		newPath, err := renamePath(path)
		if err != nil {
			return err
		}
		if err := os.Remove(newPath); err != nil {
			return fmt.Errorf("rmdir %s: %w", newPath, err)
		}
		e.emit(EventRemoved, newPath)
		return nil
	}
}

// renamePath renames a directory to a random fixed-length name in its
// parent and returns the new path.
func renamePath(path string) (string, error) {
	name, err := randomName(renamedNameLength)
	if err != nil {
		return "", err
	}
	newPath := filepath.Join(filepath.Dir(path), name)
	if err := os.Rename(path, newPath); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	return newPath, nil
}
