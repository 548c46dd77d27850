package wipe

import (
	"fmt"
	"os"

	"scour/pkg/treewalk"
)

// RemoveTree sanitizes every entry under root (root included) with the
// named standard. Files run the standard's file sequence; directories
// follow its directory behavior. The done event fires once, after the
// whole tree has finished successfully.
func (e *Engine) RemoveTree(standardName, root string) error {
	std, err := Lookup(standardName)
	if err != nil {
		return err
	}

	state := newMarkState()
	var dirHook func(string) error
	switch std.DirBehavior {
	case DirMark:
		dirHook = e.markDirHook(state)
	case DirRename:
		dirHook = e.renameDirHook()
	default:
		dirHook = nil // walker's plain os.Remove
	}

	walker := treewalk.New(&treewalk.Options{
		RemoveFile: func(path string) error { return e.runStandard(std, path) },
		RemoveDir:  dirHook,
	})

	e.logger.Debug("removing tree", "root", root, "standard", std.Name)
	if err := walker.RemoveTree(root); err != nil {
		return err
	}
	if n := state.size(); n != 0 {
		return fmt.Errorf("%d directories still tracked after traversal: %w", n, ErrProtocolViolation)
	}
	e.emit(EventDone, root)
	return nil
}

// Remove sanitizes a single path with the named standard. A directory
// argument requires RemoveTree; pointing a file standard at a
// directory is refused rather than silently recursed. A symlink is
// unlinked without following, whatever it points at.
func (e *Engine) Remove(standardName, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("lstat target: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory; use recursive removal", path)
	}
	return e.Run(standardName, path)
}
