package wipe

import (
	"crypto/rand"
	"fmt"
	"os"
)

// fillFunc writes the expected deterministic pattern for the chunk at
// the given absolute offset into buf. Used both to generate chunks and
// to recompute them during verification.
type fillFunc func(buf []byte, offset int64)

func fillConstant(value byte) fillFunc {
	return func(buf []byte, _ int64) {
		for i := range buf {
			buf[i] = value
		}
	}
}

// fillSequence repeats seq across the file. The starting index is
// derived from the absolute offset so the pattern stays continuous
// across chunk boundaries even when the chunk size is not a multiple
// of the sequence length.
func fillSequence(seq []byte) fillFunc {
	return func(buf []byte, offset int64) {
		k := int(offset % int64(len(seq)))
		for i := range buf {
			buf[i] = seq[k]
			k++
			if k == len(seq) {
				k = 0
			}
		}
	}
}

// deterministicPattern adapts a fillFunc to the chunked writer.
func deterministicPattern(fill fillFunc) PatternFunc {
	return func(n int, offset int64) ([]byte, error) {
		buf := make([]byte, n)
		fill(buf, offset)
		return buf, nil
	}
}

// randomPattern fills every chunk with fresh bytes from the
// cryptographically secure source. Each chunk is drawn independently.
func randomPattern() PatternFunc {
	return func(n int, _ int64) ([]byte, error) {
		buf := make([]byte, n)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("random pattern: %w", err)
		}
		return buf, nil
	}
}

// randomByte draws one unpredictable byte. The caller reuses it as a
// constant fill for every chunk of every pass of the operation; it is
// deliberately not re-drawn per chunk.
func randomByte() (byte, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("random byte: %w", err)
	}
	return b[0], nil
}

// complementPattern reads the chunk's current content from f and
// returns its bitwise inverse. The read happens inside the generator
// call, before the writer overwrites that same chunk.
func complementPattern(f *os.File) PatternFunc {
	return func(n int, offset int64) ([]byte, error) {
		buf := make([]byte, n)
		if _, err := f.ReadAt(buf, offset); err != nil {
			return nil, fmt.Errorf("read for complement at offset %d: %w", offset, err)
		}
		for i := range buf {
			buf[i] = ^buf[i]
		}
		return buf, nil
	}
}
