package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

// crashState is shared by every copy of a safeModel so that a panic seen in
// View can end the program on the next Update.
type crashState struct {
	crashed bool
	reason  string
}

type safeModel struct {
	m     model
	log   *slog.Logger
	crash ports.CrashRecorder
	state *crashState
}

func wrapSafe(m model, log *slog.Logger, crash ports.CrashRecorder) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log, crash: crash, state: &crashState{}}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	if s.state.crashed {
		return s, tea.Quit
	}
	if cm, ok := msg.(crashedMsg); ok {
		s.fail(cm.where, cm.value, cm.stack)
		return s, tea.Quit
	}

	defer func() {
		if r := recover(); r != nil {
			s.fail("tui.update", r, debug.Stack())
			tm = s
			cmd = tea.Quit
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	if s.state.crashed {
		return "Unexpected error, exiting (see crash log)\n"
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail("tui.view", r, debug.Stack())
			out = "Unexpected error, exiting (see crash log)\n"
		}
	}()
	return s.m.View()
}

func (s safeModel) fail(where string, r any, stack []byte) {
	s.state.crashed = true
	s.state.reason = fmt.Sprint(r)

	s.log.Error("panic.recovered",
		"where", where,
		"panic", s.state.reason,
		"stack", string(stack),
	)
	if s.crash != nil {
		if err := s.crash.Record(where, r, stack); err != nil {
			s.log.Error("crash.record.failed", "err", err)
		}
	}
}

var _ tea.Model = (*safeModel)(nil)
