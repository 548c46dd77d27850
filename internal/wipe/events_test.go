package wipe

import (
	"sync"
	"testing"
)

func TestRecorderCountsAndIndexes(t *testing.T) {
	r := NewRecorder()
	r.Notify(Event{Kind: EventInit, Path: "/a"})
	r.Notify(Event{Kind: EventRemoved, Path: "/a"})
	r.Notify(Event{Kind: EventMark, Path: "/d"})
	r.Notify(Event{Kind: EventDone, Path: "/"})

	if got := r.Count(EventRemoved); got != 1 {
		t.Errorf("removed count = %d, want 1", got)
	}
	if !r.Touched("/a") || !r.Touched("/d") {
		t.Error("touched index incomplete")
	}
	if r.Touched("/b") {
		t.Error("unexpected path in index")
	}
	if len(r.Events()) != 4 {
		t.Errorf("events = %d, want 4", len(r.Events()))
	}
}

func TestRecorderConcurrentNotify(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				r.Notify(Event{Kind: EventInit, Path: "/p"})
			}
		}()
	}
	wg.Wait()
	if got := r.Count(EventInit); got != 4000 {
		t.Errorf("init count = %d, want 4000", got)
	}
}
