package wipe

import (
	"os"
	"path/filepath"
	"testing"
)

// buildTree creates root/{a.txt, sub/{b.txt, c.txt}, sub/inner/d.txt}.
func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tree")
	inner := filepath.Join(root, "sub", "inner")
	if err := os.MkdirAll(inner, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	files := []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "sub", "c.txt"),
		filepath.Join(inner, "d.txt"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("sensitive"), 0644); err != nil {
			t.Fatalf("file create failed: %v", err)
		}
	}
	return root
}

func TestRemoveTreeMarkStandard(t *testing.T) {
	recorder := NewRecorder()
	e := newTestEngine(recorder)
	root := buildTree(t)

	if err := e.RemoveTree("mark", root); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if fileExists(root) {
		t.Fatal("tree should be gone")
	}

	if got := recorder.Count(EventMark); got != 3 {
		t.Errorf("mark events = %d, want 3 (root, sub, inner)", got)
	}
	if got := recorder.Count(EventRemoved); got != 4 {
		t.Errorf("removed events = %d, want 4 files", got)
	}
	if got := recorder.Count(EventDone); got != 1 {
		t.Errorf("done events = %d, want exactly 1", got)
	}

	// done is the terminal event of the whole tree.
	events := recorder.Events()
	if events[len(events)-1].Kind != EventDone {
		t.Errorf("last event = %v, want done", events[len(events)-1].Kind)
	}
}

func TestRemoveTreeEventOrderPerPath(t *testing.T) {
	recorder := NewRecorder()
	e := newTestEngine(recorder)
	root := buildTree(t)
	target := filepath.Join(root, "a.txt")

	if err := e.RemoveTree("zeros", root); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}

	sawInit := false
	for _, ev := range recorder.Events() {
		if ev.Path != target {
			continue
		}
		switch ev.Kind {
		case EventInit:
			sawInit = true
		case EventRemoved:
			if !sawInit {
				t.Fatal("removed event before init for the same path")
			}
		}
	}
	if !sawInit {
		t.Fatal("no init event recorded for a.txt")
	}
}

func TestRemoveTreeSecureStandard(t *testing.T) {
	recorder := NewRecorder()
	e := newTestEngine(recorder)
	root := buildTree(t)
	parent := filepath.Dir(root)

	if err := e.RemoveTree("secure", root); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if fileExists(root) {
		t.Fatal("tree should be gone")
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("renamed residue left behind: %v", entries)
	}
	// 4 files + 3 directories, all removed under random names.
	if got := recorder.Count(EventRemoved); got != 7 {
		t.Errorf("removed events = %d, want 7", got)
	}
}

func TestRemoveTreeDefaultDirBehavior(t *testing.T) {
	e := newTestEngine(nil)
	root := buildTree(t)

	if err := e.RemoveTree("zeros", root); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if fileExists(root) {
		t.Fatal("tree should be gone")
	}
}

func TestRemoveTreeUnknownStandard(t *testing.T) {
	e := newTestEngine(nil)
	err := e.RemoveTree("bogus", buildTree(t))
	if err == nil {
		t.Fatal("expected error for unknown standard")
	}
}

func TestRemoveTreeLeavesSymlinkTargetsIntact(t *testing.T) {
	recorder := NewRecorder()
	e := newTestEngine(recorder)
	root := buildTree(t)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	content := []byte("must survive the wipe")
	if err := os.WriteFile(outside, content, 0644); err != nil {
		t.Fatalf("file create failed: %v", err)
	}
	link := filepath.Join(root, "sub", "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	if err := e.RemoveTree("zeros", root); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if fileExists(root) {
		t.Fatal("tree should be gone")
	}

	got, err := os.ReadFile(outside)
	if err != nil {
		t.Fatalf("link target should still exist: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("link target content = %q, want %q", got, content)
	}
	// The link itself counts as a removal, but never gets an init: no
	// overwrite ever starts on it.
	if !recorder.Touched(link) {
		t.Error("no removed event recorded for the symlink")
	}
	for _, ev := range recorder.Events() {
		if ev.Path == link && ev.Kind == EventInit {
			t.Error("init event recorded for a symlink")
		}
	}
}

func TestRemoveUnlinksSymlinkWithoutFollowing(t *testing.T) {
	e := newTestEngine(nil)
	target := createTestFile(t, 32, 0xA5)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	if err := e.Remove("secure", link); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if fileExists(link) {
		t.Fatal("symlink should be gone")
	}
	got := readFileBytes(t, target)
	for i, b := range got {
		if b != 0xA5 {
			t.Fatalf("link target overwritten at offset %d: %#x", i, b)
		}
	}
}

func TestRemoveDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	e := newTestEngine(nil)
	if err := e.Remove("zeros", link); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Fatalf("dangling symlink should be gone, lstat err = %v", err)
	}
}

func TestRemoveSingleFile(t *testing.T) {
	e := newTestEngine(nil)
	path := createTestFile(t, 32, 0xA5)
	if err := e.Remove("zeros", path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if fileExists(path) {
		t.Fatal("file should be gone")
	}
}

func TestRemoveRefusesDirectory(t *testing.T) {
	e := newTestEngine(nil)
	dir := t.TempDir()
	if err := e.Remove("zeros", dir); err == nil {
		t.Fatal("expected refusal for directory target")
	}
	if !fileExists(dir) {
		t.Fatal("directory must be untouched")
	}
}

func TestRemoveTreeSingleFileRoot(t *testing.T) {
	// A tree removal pointed at a plain file degenerates to a file wipe.
	recorder := NewRecorder()
	e := newTestEngine(recorder)
	path := createTestFile(t, 10, 0xA5)

	if err := e.RemoveTree("zeros", path); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if fileExists(path) {
		t.Fatal("file should be gone")
	}
	if got := recorder.Count(EventDone); got != 1 {
		t.Errorf("done events = %d, want 1", got)
	}
}
