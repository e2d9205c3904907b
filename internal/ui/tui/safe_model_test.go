package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSafeModelRecordsPanicFromSubmission(t *testing.T) {
	rec := &fakeRecorder{}
	sub := &fakeSubmitter{panic: "boom"}
	s := wrapSafe(newTestModel(sub), nil, rec)

	next, cmd := s.Update(key(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatalf("expected submit command")
	}

	msg := cmd()
	if _, ok := msg.(crashedMsg); !ok {
		t.Fatalf("expected crashedMsg, got %T", msg)
	}

	next, cmd = next.Update(msg)
	if cmd == nil {
		t.Fatalf("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}

	sm := next.(safeModel)
	if !sm.state.crashed || sm.state.reason != "boom" {
		t.Fatalf("expected crash state, got %+v", sm.state)
	}
	if len(rec.where) != 1 || rec.where[0] != "tui.submit" {
		t.Fatalf("expected one crash record, got %v", rec.where)
	}
	if !strings.Contains(sm.View(), "Unexpected error") {
		t.Fatalf("expected crash view")
	}
}

func TestSafeModelQuitsOnUpdateAfterCrash(t *testing.T) {
	rec := &fakeRecorder{}
	s := wrapSafe(newModel(context.Background(), Deps{Submitter: &fakeSubmitter{}}), nil, rec)
	s.state.crashed = true

	_, cmd := s.Update(key(tea.KeyTab))
	if cmd == nil {
		t.Fatalf("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
