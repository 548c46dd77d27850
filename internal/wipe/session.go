package wipe

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

// renamedNameLength is the length of the random replacement name a
// file receives before a secure unlink.
const renamedNameLength = 12

// nameAlphabet contains only filesystem-safe characters: no path
// separators and nothing that needs shell escaping.
const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Session owns one open file descriptor together with the file's path
// and its current logical size. A session is valid between OpenSession
// and End (or Close); Rename invalidates it and hands back a
// replacement.
type Session struct {
	file *os.File
	path string
	size int64
}

// OpenSession stats the target, captures its size, and opens it for
// read and write. The target must be a regular file; symlinks are not
// followed, so a link can never cause its target to be overwritten.
func OpenSession(path string) (*Session, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("lstat target: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("target %s is a directory, not a file", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("target %s is not a regular file (%s)", path, info.Mode().Type())
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open target: %w", err)
	}
	return &Session{file: f, path: path, size: info.Size()}, nil
}

// Path returns the file's current path, which changes on Rename.
func (s *Session) Path() string { return s.path }

// Size returns the currently addressable byte range of the file.
func (s *Session) Size() int64 { return s.size }

// Rename moves the file to a random fixed-length name in the same
// directory and returns a fresh session for the new path; the receiver
// is invalid afterwards. The old descriptor is closed before the new
// one exists, so no descriptor leaks on any path. If the OS rename
// fails, the file is reopened under its old name and the receiver
// stays usable.
func (s *Session) Rename() (*Session, error) {
	if s.file == nil {
		return nil, ErrSessionClosed
	}
	name, err := randomName(renamedNameLength)
	if err != nil {
		return nil, err
	}
	newPath := filepath.Join(filepath.Dir(s.path), name)

	if err := s.file.Close(); err != nil {
		return nil, fmt.Errorf("close before rename: %w", err)
	}
	s.file = nil

	if err := os.Rename(s.path, newPath); err != nil {
		if f, openErr := os.OpenFile(s.path, os.O_RDWR, 0); openErr == nil {
			s.file = f
		}
		return nil, fmt.Errorf("rename %s: %w", s.path, err)
	}

	f, err := os.OpenFile(newPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("reopen after rename: %w", err)
	}
	return &Session{file: f, path: newPath, size: s.size}, nil
}

// Truncate shrinks the file passes times. Each pass draws a uniform
// new size between 25% and 75% of the current size, so repeated passes
// compound downward and never grow the file.
func (s *Session) Truncate(passes int) error {
	if s.file == nil {
		return ErrSessionClosed
	}
	for i := 0; i < passes; i++ {
		lo := s.size / 4
		hi := s.size * 3 / 4
		target, err := randomInt64(lo, hi)
		if err != nil {
			return err
		}
		if err := s.file.Truncate(target); err != nil {
			return fmt.Errorf("truncate %s to %d: %w", s.path, target, err)
		}
		s.size = target
	}
	return nil
}

// ResetTimestamps sets access and modification time to the zero epoch.
func (s *Session) ResetTimestamps() error {
	epoch := time.Unix(0, 0)
	if err := os.Chtimes(s.path, epoch, epoch); err != nil {
		return fmt.Errorf("reset timestamps of %s: %w", s.path, err)
	}
	return nil
}

// RandomizeTimestamps sets both timestamps to one uniformly random
// instant within [lower, upper]. Equal bounds degenerate to a fixed
// timestamp, which is allowed.
func (s *Session) RandomizeTimestamps(lower, upper time.Time) error {
	if upper.Before(lower) {
		return fmt.Errorf("timestamp bounds out of order: %s after %s", lower, upper)
	}
	sec, err := randomInt64(lower.Unix(), upper.Unix())
	if err != nil {
		return err
	}
	at := time.Unix(sec, 0)
	if err := os.Chtimes(s.path, at, at); err != nil {
		return fmt.Errorf("randomize timestamps of %s: %w", s.path, err)
	}
	return nil
}

// End closes the handle and unlinks the path. A file that is already
// gone counts as success, since the goal state is reached; any other
// unlink failure is propagated.
func (s *Session) End() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unlink %s: %w", s.path, err)
	}
	return nil
}

// Close releases the descriptor without unlinking. Used when a
// sequence aborts and the partially overwritten file must remain.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

// randomName builds an unpredictable fixed-length file name from the
// safe alphabet using the cryptographically secure source.
func randomName(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}
	for i, b := range buf {
		buf[i] = nameAlphabet[int(b)%len(nameAlphabet)]
	}
	return string(buf), nil
}

// randomInt64 draws a uniform value in [lo, hi] from crypto/rand.
func randomInt64(lo, hi int64) (int64, error) {
	if hi < lo {
		return 0, fmt.Errorf("random range out of order: [%d, %d]", lo, hi)
	}
	if hi == lo {
		return lo, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		return 0, fmt.Errorf("random draw: %w", err)
	}
	return lo + n.Int64(), nil
}
