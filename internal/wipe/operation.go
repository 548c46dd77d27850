package wipe

import (
	"fmt"
	"time"
)

type opKind int

const (
	opConstant opKind = iota
	opBytes
	opRandom
	opRandomByte
	opCounter
	opComplement
	opRename
	opTruncate
	opResetTimestamps
	opRandomizeTimestamps
)

// CounterRange is an arithmetic progression of fill values: one full
// overwrite pass runs for every value from Start, stepping by Step,
// while the value stays below Limit.
type CounterRange struct {
	Start byte
	Limit byte
	Step  byte
}

// Operation is one step of a standard's sequence: a stateless
// descriptor interpreted against a file session. Operations may depend
// on the side effects of earlier steps (Rename changes the path used
// by everything after it), so a sequence always executes in order.
type Operation struct {
	kind    opKind
	value   byte
	seq     []byte
	passes  int
	verify  bool
	counter CounterRange
	lower   time.Time
	upper   time.Time
}

// Zeros overwrites the file with 0x00, passes times.
func Zeros(passes int) Operation {
	return Operation{kind: opConstant, value: 0x00, passes: passes}
}

// Ones overwrites the file with 0xFF, passes times.
func Ones(passes int) Operation {
	return Operation{kind: opConstant, value: 0xFF, passes: passes}
}

// Constant overwrites the file with the given byte, passes times.
func Constant(value byte, passes int) Operation {
	return Operation{kind: opConstant, value: value, passes: passes}
}

// Bytes overwrites the file with the repeating byte sequence, once.
func Bytes(seq ...byte) Operation {
	return Operation{kind: opBytes, seq: seq, passes: 1}
}

// Random overwrites the file with fresh crypto-random data, passes times.
func Random(passes int) Operation {
	return Operation{kind: opRandom, passes: passes}
}

// RandomByte draws one random byte and uses it as the constant fill
// for every chunk of every pass. The byte is drawn once per operation.
func RandomByte(passes int) Operation {
	return Operation{kind: opRandomByte, passes: passes}
}

// Counter runs one constant-fill pass per value of the progression.
func Counter(r CounterRange) Operation {
	return Operation{kind: opCounter, counter: r, passes: 1}
}

// Complement overwrites every byte with its bitwise inverse, passes
// times. Applying it twice restores the original content.
func Complement(passes int) Operation {
	return Operation{kind: opComplement, passes: passes}
}

// Rename moves the file to a random name before unlinking.
func Rename() Operation {
	return Operation{kind: opRename, passes: 1}
}

// Truncate shrinks the file to a random fraction of its size, passes times.
func Truncate(passes int) Operation {
	return Operation{kind: opTruncate, passes: passes}
}

// ResetTimestamps sets both file timestamps to the zero epoch.
func ResetTimestamps() Operation {
	return Operation{kind: opResetTimestamps, passes: 1}
}

// RandomizeTimestamps sets both timestamps to a random instant in
// [lower, upper].
func RandomizeTimestamps(lower, upper time.Time) Operation {
	return Operation{kind: opRandomizeTimestamps, passes: 1, lower: lower, upper: upper}
}

// Verified returns a copy of the operation with readback verification
// enabled. A mismatch aborts the remaining sequence.
func (op Operation) Verified() Operation {
	op.verify = true
	return op
}

// Passes returns how many full sweeps the operation performs. For a
// counter operation this is the length of the progression.
func (op Operation) Passes() int {
	if op.kind == opCounter {
		n := 0
		for v := int(op.counter.Start); v < int(op.counter.Limit); v += int(op.counter.Step) {
			n++
		}
		return n
	}
	return op.passes
}

// Verifying reports whether the operation reads back what it wrote.
func (op Operation) Verifying() bool { return op.verify }

// String describes the operation for catalogs and logs.
func (op Operation) String() string {
	switch op.kind {
	case opConstant:
		switch op.value {
		case 0x00:
			return describePass("zeros", op.passes, op.verify)
		case 0xFF:
			return describePass("ones", op.passes, op.verify)
		}
		return describePass(fmt.Sprintf("byte 0x%02X", op.value), op.passes, op.verify)
	case opBytes:
		return describePass(fmt.Sprintf("bytes % X", op.seq), op.passes, op.verify)
	case opRandom:
		return describePass("random", op.passes, op.verify)
	case opRandomByte:
		return describePass("random byte", op.passes, op.verify)
	case opCounter:
		return fmt.Sprintf("counter 0x%02X..0x%02X step 0x%02X", op.counter.Start, op.counter.Limit, op.counter.Step)
	case opComplement:
		return describePass("complement", op.passes, false)
	case opRename:
		return "rename"
	case opTruncate:
		return describePass("truncate", op.passes, false)
	case opResetTimestamps:
		return "reset timestamps"
	case opRandomizeTimestamps:
		return "randomize timestamps"
	}
	return "unknown"
}

func describePass(name string, passes int, verify bool) string {
	if verify {
		name += "+verify"
	}
	if passes == 1 {
		return name
	}
	return fmt.Sprintf("%s ×%d", name, passes)
}

// apply interprets one operation against the session. The returned
// session is the one later operations must use; Rename is the only
// operation that swaps it.
func (e *Engine) apply(s *Session, op Operation) (*Session, error) {
	switch op.kind {
	case opConstant:
		return s, e.constantSweep(s, op, fillConstant(op.value))
	case opBytes:
		if len(op.seq) == 0 {
			return s, fmt.Errorf("empty byte sequence pattern")
		}
		return s, e.constantSweep(s, op, fillSequence(op.seq))
	case opRandom:
		return s, e.randomSweep(s, op)
	case opRandomByte:
		b, err := randomByte()
		if err != nil {
			return s, err
		}
		return s, e.constantSweep(s, op, fillConstant(b))
	case opCounter:
		for v := int(op.counter.Start); v < int(op.counter.Limit); v += int(op.counter.Step) {
			if err := e.writeExtended(s, deterministicPattern(fillConstant(byte(v)))); err != nil {
				return s, err
			}
		}
		return s, nil
	case opComplement:
		for pass := 0; pass < op.passes; pass++ {
			if err := e.writeExtended(s, complementPattern(s.file)); err != nil {
				return s, err
			}
		}
		return s, nil
	case opRename:
		ns, err := s.Rename()
		if err != nil {
			return s, err
		}
		e.logger.Debug("renamed before unlink", "path", ns.Path())
		return ns, nil
	case opTruncate:
		return s, s.Truncate(op.passes)
	case opResetTimestamps:
		return s, s.ResetTimestamps()
	case opRandomizeTimestamps:
		return s, s.RandomizeTimestamps(op.lower, op.upper)
	}
	return s, fmt.Errorf("unknown operation kind %d", op.kind)
}

// constantSweep runs the deterministic passes of a constant or
// sequence fill, verifying the readback after each pass when asked.
func (e *Engine) constantSweep(s *Session, op Operation, fill fillFunc) error {
	for pass := 0; pass < op.passes; pass++ {
		if err := e.writeExtended(s, deterministicPattern(fill)); err != nil {
			return err
		}
		if op.verify {
			if err := e.verifyExtended(s, pass, fill); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) randomSweep(s *Session, op Operation) error {
	for pass := 0; pass < op.passes; pass++ {
		if !op.verify {
			if err := e.writeExtended(s, randomPattern()); err != nil {
				return err
			}
			continue
		}
		sums, err := e.writeRecorded(s, randomPattern())
		if err != nil {
			return err
		}
		if err := e.verifyRecorded(s, pass, sums); err != nil {
			return err
		}
	}
	return nil
}
