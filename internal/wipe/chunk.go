package wipe

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PatternFunc produces exactly n pattern bytes for the chunk that
// starts at the given absolute file offset. The complement pattern
// reads the existing content at that offset, so the writer must not
// have touched it yet when the function is called.
type PatternFunc func(n int, offset int64) ([]byte, error)

// writeExtended overwrites the session's whole addressable range with
// pattern bytes, in chunks of at most the engine's chunk size. A
// zero-size session completes without issuing any write. The first
// failing chunk aborts the sweep and its error is propagated.
func (e *Engine) writeExtended(s *Session, fn PatternFunc) error {
	if s.file == nil {
		return ErrSessionClosed
	}
	var cursor int64
	for cursor < s.size {
		n := s.size - cursor
		if n > e.chunkSize {
			n = e.chunkSize
		}
		buf, err := fn(int(n), cursor)
		if err != nil {
			return err
		}
		if int64(len(buf)) != n {
			return fmt.Errorf("pattern generator returned %d bytes, want %d", len(buf), n)
		}
		if _, err := s.file.WriteAt(buf, cursor); err != nil {
			return fmt.Errorf("write chunk at offset %d of %s: %w", cursor, s.path, err)
		}
		cursor += n
	}
	return nil
}

// verifyExtended reads the session's whole range back and compares it
// chunk by chunk against the expected deterministic fill. The first
// differing byte aborts with a VerificationError carrying its offset.
func (e *Engine) verifyExtended(s *Session, pass int, fill fillFunc) error {
	if s.file == nil {
		return ErrSessionClosed
	}
	readback := make([]byte, min64(s.size, e.chunkSize))
	expected := make([]byte, min64(s.size, e.chunkSize))
	var cursor int64
	for cursor < s.size {
		n := s.size - cursor
		if n > e.chunkSize {
			n = e.chunkSize
		}
		got := readback[:n]
		if _, err := s.file.ReadAt(got, cursor); err != nil {
			return fmt.Errorf("readback at offset %d of %s: %w", cursor, s.path, err)
		}
		want := expected[:n]
		fill(want, cursor)
		if !bytes.Equal(got, want) {
			return &VerificationError{Path: s.path, Offset: cursor + firstDiff(got, want), Pass: pass}
		}
		cursor += n
	}
	return nil
}

// writeRecorded runs a write sweep while recording the xxhash digest of
// every chunk, in order. Used by verifying random passes, which cannot
// compare against a recomputable fill.
func (e *Engine) writeRecorded(s *Session, fn PatternFunc) ([]uint64, error) {
	var sums []uint64
	recording := func(n int, offset int64) ([]byte, error) {
		buf, err := fn(n, offset)
		if err != nil {
			return nil, err
		}
		sums = append(sums, xxhash.Sum64(buf))
		return buf, nil
	}
	if err := e.writeExtended(s, recording); err != nil {
		return nil, err
	}
	return sums, nil
}

// verifyRecorded replays the chunk sequence and requires every chunk's
// readback digest to match the digest recorded during the write.
func (e *Engine) verifyRecorded(s *Session, pass int, sums []uint64) error {
	if s.file == nil {
		return ErrSessionClosed
	}
	readback := make([]byte, min64(s.size, e.chunkSize))
	var cursor int64
	for i := 0; cursor < s.size; i++ {
		n := s.size - cursor
		if n > e.chunkSize {
			n = e.chunkSize
		}
		got := readback[:n]
		if _, err := s.file.ReadAt(got, cursor); err != nil {
			return fmt.Errorf("readback at offset %d of %s: %w", cursor, s.path, err)
		}
		if i >= len(sums) || xxhash.Sum64(got) != sums[i] {
			return &VerificationError{Path: s.path, Offset: cursor, Pass: pass}
		}
		cursor += n
	}
	return nil
}

func firstDiff(a, b []byte) int64 {
	for i := range a {
		if a[i] != b[i] {
			return int64(i)
		}
	}
	return 0
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
