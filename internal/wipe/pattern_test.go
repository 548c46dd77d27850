package wipe

import (
	"bytes"
	"crypto/rand"
	"os"
	"testing"
)

func TestFillSequenceAlignment(t *testing.T) {
	fill := fillSequence([]byte{1, 2, 3})

	// A chunk starting mid-sequence must continue the pattern as if
	// the file were filled in one piece.
	buf := make([]byte, 5)
	fill(buf, 4)
	want := []byte{2, 3, 1, 2, 3} // absolute offsets 4..8 of 1,2,3,1,2,3,...
	if !bytes.Equal(buf, want) {
		t.Errorf("fillSequence at offset 4 = %v, want %v", buf, want)
	}

	fill(buf, 0)
	want = []byte{1, 2, 3, 1, 2}
	if !bytes.Equal(buf, want) {
		t.Errorf("fillSequence at offset 0 = %v, want %v", buf, want)
	}
}

func TestSequencePatternContinuousAcrossChunks(t *testing.T) {
	// Chunk size 16 is not a multiple of the 3-byte sequence, so any
	// per-chunk restart of the pattern would show at chunk boundaries.
	e := newTestEngine(nil)
	path := createTestFile(t, 3*testChunkSize+2, 0xA5)
	s := openTestSession(t, path)

	seq := []byte{0x92, 0x49, 0x24}
	if _, err := e.apply(s, Bytes(seq...)); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	content := readFileBytes(t, path)
	for i, b := range content {
		if b != seq[i%3] {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, b, seq[i%3])
		}
	}
}

func TestConstantPatternIdempotent(t *testing.T) {
	e := newTestEngine(nil)
	path := createTestFile(t, 100, 0xA5)
	s := openTestSession(t, path)

	for i := 0; i < 2; i++ {
		if _, err := e.apply(s, Constant(0x37, 1)); err != nil {
			t.Fatalf("apply %d failed: %v", i, err)
		}
		for j, b := range readFileBytes(t, path) {
			if b != 0x37 {
				t.Fatalf("application %d: byte %d = 0x%02X, want 0x37", i, j, b)
			}
		}
	}
}

func TestComplementSelfInverse(t *testing.T) {
	e := newTestEngine(nil)
	path := createTestFile(t, 4*testChunkSize+11, 0x00)

	original := make([]byte, 4*testChunkSize+11)
	if _, err := rand.Read(original); err != nil {
		t.Fatalf("seeding random content failed: %v", err)
	}
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("writing random content failed: %v", err)
	}

	s := openTestSession(t, path)
	if _, err := e.apply(s, Complement(1)); err != nil {
		t.Fatalf("first complement failed: %v", err)
	}

	inverted := readFileBytes(t, path)
	for i := range original {
		if inverted[i] != ^original[i] {
			t.Fatalf("byte %d not complemented", i)
		}
	}

	if _, err := e.apply(s, Complement(1)); err != nil {
		t.Fatalf("second complement failed: %v", err)
	}
	if !bytes.Equal(readFileBytes(t, path), original) {
		t.Error("double complement did not restore original content")
	}
}

func TestRandomByteDrawnOncePerOperation(t *testing.T) {
	// The single random byte is drawn once and reused as a constant
	// fill for every chunk of every pass, so the whole file must end
	// up uniform even across chunk boundaries.
	e := newTestEngine(nil)
	path := createTestFile(t, 6*testChunkSize+5, 0xA5)
	s := openTestSession(t, path)

	if _, err := e.apply(s, RandomByte(2)); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	content := readFileBytes(t, path)
	first := content[0]
	for i, b := range content {
		if b != first {
			t.Fatalf("byte %d = 0x%02X differs from fill 0x%02X; random byte was re-drawn", i, b, first)
		}
	}
}

func TestCounterSweep(t *testing.T) {
	op := Counter(CounterRange{Start: 0x00, Limit: 0xFF, Step: 0x11})
	if got := op.Passes(); got != 15 {
		t.Fatalf("counter pass count = %d, want 15", got)
	}

	e := newTestEngine(nil)
	path := createTestFile(t, 40, 0xA5)
	s := openTestSession(t, path)

	if _, err := e.apply(s, op); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// The final sweep writes the last progression value, 0xEE.
	for i, b := range readFileBytes(t, path) {
		if b != 0xEE {
			t.Fatalf("byte %d = 0x%02X, want 0xEE after final counter pass", i, b)
		}
	}
}

func TestRandomPatternFillsWholeRange(t *testing.T) {
	e := newTestEngine(nil)
	path := createTestFile(t, 2*testChunkSize, 0x00)
	s := openTestSession(t, path)

	if _, err := e.apply(s, Random(1)); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// A 32-byte all-zero run surviving a random fill is implausible.
	if bytes.Equal(readFileBytes(t, path), make([]byte, 2*testChunkSize)) {
		t.Error("random pass left the file all zeros")
	}
}
