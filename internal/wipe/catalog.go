package wipe

import (
	"fmt"
	"os"
	"sort"
)

// DirBehavior selects how a standard handles directories inside a tree
// removal.
type DirBehavior int

const (
	// DirDefault leaves directory removal to the tree walker.
	DirDefault DirBehavior = iota
	// DirMark runs the two-phase mark protocol before removal.
	DirMark
	// DirRename renames the directory to a random name and removes it
	// unconditionally.
	DirRename
)

// Standard is a named, immutable sanitization policy: an ordered
// operation sequence for files, a directory behavior, and, where the
// standard defines one, a sequence for raw block devices. Every file
// sequence ends in an implicit close+unlink performed by Run.
type Standard struct {
	Name        string
	Description string
	FileOps     []Operation
	DirBehavior DirBehavior
	DeviceOps   []Operation
}

// DefaultStandard is used when the caller names no standard.
const DefaultStandard = "secure"

var gutmannSeq = []Operation{
	Random(4),
	Constant(0x55, 1),
	Constant(0xAA, 1),
	Bytes(0x92, 0x49, 0x24),
	Bytes(0x49, 0x24, 0x92),
	Bytes(0x24, 0x92, 0x49),
	Counter(CounterRange{Start: 0x00, Limit: 0xFF, Step: 0x11}),
	Bytes(0x92, 0x49, 0x24),
	Bytes(0x49, 0x24, 0x92),
	Bytes(0x24, 0x92, 0x49),
	Bytes(0x6D, 0xB6, 0xDB),
	Bytes(0xB6, 0xDB, 0x6D),
	Bytes(0xDB, 0x6D, 0xB6),
	Random(4),
}

var catalog = map[string]*Standard{
	"mark": {
		Name:        "mark",
		Description: "No overwrite; plain unlink for files, two-phase mark protocol for directories.",
		DirBehavior: DirMark,
	},
	"randomData": {
		Name:        "randomData",
		Description: "One pass of cryptographically random data.",
		FileOps:     []Operation{Random(1)},
	},
	"randomByte": {
		Name:        "randomByte",
		Description: "One pass of a single random byte, drawn once.",
		FileOps:     []Operation{RandomByte(1)},
	},
	"NZSIT-402": {
		Name:        "NZSIT-402",
		Description: "New Zealand NZSIT 402: one verified random-byte pass.",
		FileOps:     []Operation{RandomByte(1).Verified()},
	},
	"zeros": {
		Name:        "zeros",
		Description: "One pass of 0x00.",
		FileOps:     []Operation{Zeros(1)},
	},
	"ones": {
		Name:        "ones",
		Description: "One pass of 0xFF.",
		FileOps:     []Operation{Ones(1)},
	},
	"secure": {
		Name:        "secure",
		Description: "Random pass, then rename, truncate and timestamp reset before unlink.",
		FileOps: []Operation{
			Random(1),
			Rename(),
			Truncate(1),
			ResetTimestamps(),
		},
		DirBehavior: DirRename,
	},
	"GOST R50739-95": {
		Name:        "GOST R50739-95",
		Description: "Russian GOST R50739-95: zeros then random.",
		FileOps:     []Operation{Zeros(1), Random(1)},
		DeviceOps:   []Operation{Zeros(1), Random(1)},
	},
	"HMG-IS5": {
		Name:        "HMG-IS5",
		Description: "British HMG IS5 (enhanced): zeros, ones, verified random.",
		FileOps:     []Operation{Zeros(1), Ones(1), Random(1).Verified()},
	},
	"DOD 5220.22-M": {
		Name:        "DOD 5220.22-M",
		Description: "US DoD 5220.22-M: verified zeros, ones and random passes.",
		FileOps:     []Operation{Zeros(1).Verified(), Ones(1).Verified(), Random(1).Verified()},
	},
	"AR380-19": {
		Name:        "AR380-19",
		Description: "US Army AR380-19: random, random byte, complement.",
		FileOps:     []Operation{Random(1), RandomByte(1), Complement(1)},
	},
	"VSITR": {
		Name:        "VSITR",
		Description: "German VSITR: three alternating zeros/ones rounds, then random.",
		FileOps: []Operation{
			Zeros(1), Ones(1),
			Zeros(1), Ones(1),
			Zeros(1), Ones(1),
			Random(1),
		},
	},
	"schneier": {
		Name:        "schneier",
		Description: "Bruce Schneier's algorithm: zeros, ones, five random passes.",
		FileOps:     []Operation{Zeros(1), Ones(1), Random(5)},
	},
	"pfitzner": {
		Name:        "pfitzner",
		Description: "Roy Pfitzner's method: 33 random passes.",
		FileOps:     []Operation{Random(33)},
	},
	"gutmann": {
		Name:        "gutmann",
		Description: "Peter Gutmann's multi-pass sequence.",
		FileOps:     gutmannSeq,
	},
}

// Lookup resolves a standard by name.
func Lookup(name string) (*Standard, error) {
	std, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStandard)
	}
	return std, nil
}

// Names returns every catalog key in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Standards returns the catalog entries sorted by name.
func Standards() []*Standard {
	out := make([]*Standard, 0, len(catalog))
	for _, name := range Names() {
		out = append(out, catalog[name])
	}
	return out
}

// Run executes the named standard's file sequence against path,
// strictly in order, then closes and unlinks the file. Any operation
// failure aborts the remaining sequence; the file is left partially
// overwritten but present, and its handle is released.
func (e *Engine) Run(standardName, path string) error {
	std, err := Lookup(standardName)
	if err != nil {
		return err
	}
	return e.runStandard(std, path)
}

func (e *Engine) runStandard(std *Standard, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("lstat target: %w", err)
	}
	// A symlink's target may live anywhere on the filesystem and is not
	// ours to overwrite. Unlink the link itself and leave the target
	// untouched.
	if info.Mode()&os.ModeSymlink != 0 {
		e.logger.Debug("unlinking symlink", "path", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("unlink symlink %s: %w", path, err)
		}
		e.emit(EventRemoved, path)
		return nil
	}

	s, err := OpenSession(path)
	if err != nil {
		return err
	}
	e.emit(EventInit, path)
	e.logger.Debug("wiping file", "path", path, "standard", std.Name, "size", s.Size())

	for _, op := range std.FileOps {
		next, err := e.apply(s, op)
		if err != nil {
			// Keep the partially overwritten file, but never leak the
			// descriptor.
			_ = next.Close()
			return fmt.Errorf("%s on %s: %w", op, next.Path(), err)
		}
		s = next
	}

	if err := s.End(); err != nil {
		return err
	}
	e.emit(EventRemoved, s.Path())
	return nil
}
