package wipe

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStandard is returned when a sanitization standard name
	// is not present in the catalog.
	ErrUnknownStandard = errors.New("unknown sanitization standard")

	// ErrNotYetRemovable is the mark protocol's control signal: the
	// directory still has children, and the tree walker is expected to
	// process them and call the directory hook again.
	ErrNotYetRemovable = errors.New("directory not yet removable")

	// ErrProtocolViolation indicates the mark state machine was driven
	// out of contract, e.g. a tracked directory was revisited while
	// still non-empty. This points at a broken walker, not bad input.
	ErrProtocolViolation = errors.New("mark protocol violation")

	// ErrSessionClosed is returned when an operation is applied to a
	// session whose handle has already been closed.
	ErrSessionClosed = errors.New("file session is closed")
)

// VerificationError reports a readback mismatch after a verifying pass.
// The remaining operations of the sequence are not executed.
type VerificationError struct {
	Path   string
	Offset int64
	Pass   int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed for %s at offset %d (pass %d)", e.Path, e.Offset, e.Pass)
}
