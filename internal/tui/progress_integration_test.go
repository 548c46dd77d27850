package tui

import (
	"bytes"
	"testing"
	"time"

	"scour/internal/logging"
	"scour/internal/wipe"

	"github.com/charmbracelet/x/exp/teatest"
)

// TestProgressViewLifecycle drives the full view through a small wipe:
// events arrive, the counts update, and DoneMsg ends the program.
func TestProgressViewLifecycle(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	tm := teatest.NewTestModel(t, NewModel(2, logger), teatest.WithInitialTermSize(80, 24))

	tm.Send(EventMsg{Kind: wipe.EventInit, Path: "/tmp/alpha"})
	tm.Send(EventMsg{Kind: wipe.EventRemoved, Path: "/tmp/alpha"})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("1 removed"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(EventMsg{Kind: wipe.EventRemoved, Path: "/tmp/beta"})
	tm.Send(DoneMsg{})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
	model, ok := final.(Model)
	if !ok {
		t.Fatalf("final model is %T, want Model", final)
	}
	if model.Removed() != 2 {
		t.Errorf("Removed() = %d, want 2", model.Removed())
	}
	if model.Err() != nil {
		t.Errorf("Err() = %v, want nil", model.Err())
	}
}
