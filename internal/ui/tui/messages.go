package tui

import "github.com/Brendon-Hablutzel/api-client/internal/usecase"

type submissionDoneMsg struct {
	sub usecase.Submission
}

// crashedMsg carries a panic recovered inside a command goroutine back to the
// UI loop so it can be recorded like any other crash.
type crashedMsg struct {
	where string
	value any
	stack []byte
}
