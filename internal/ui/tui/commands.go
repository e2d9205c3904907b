package tui

import (
	"context"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// cmdSubmit executes req off the UI loop. The result is applied in Update.
func cmdSubmit(ctx context.Context, s Submitter, req domain.Request) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = crashedMsg{where: "tui.submit", value: r, stack: debug.Stack()}
			}
		}()
		return submissionDoneMsg{sub: s.Execute(ctx, req)}
	}
}
