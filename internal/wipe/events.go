package wipe

import "sync"

// EventKind classifies progress events emitted while a removal runs.
type EventKind string

const (
	// EventInit fires when a file session has been opened for wiping.
	EventInit EventKind = "init"
	// EventMark fires when a directory completes the mark protocol.
	EventMark EventKind = "mark"
	// EventRemoved fires when a path has been unlinked.
	EventRemoved EventKind = "removed"
	// EventDone fires exactly once, after a whole tree has finished.
	EventDone EventKind = "done"
)

// Event carries one progress notification for a path.
type Event struct {
	Kind EventKind
	Path string
}

// Listener receives progress events. Notify may be called from the
// goroutine driving the removal; implementations that hand events to
// other goroutines must do their own synchronization.
type Listener interface {
	Notify(Event)
}

// NopListener discards all events.
type NopListener struct{}

func (NopListener) Notify(Event) {}

// Recorder is a Listener that counts events and indexes touched paths.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	paths  map[string]struct{}
}

func NewRecorder() *Recorder {
	return &Recorder{paths: make(map[string]struct{})}
}

func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if e.Path != "" {
		r.paths[e.Path] = struct{}{}
	}
}

// Events returns a copy of all events received so far, in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns the number of events with the given kind.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Touched reports whether any event was emitted for the given path.
func (r *Recorder) Touched(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.paths[path]
	return ok
}
