package tui

import (
	"context"
	"log/slog"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
	"github.com/Brendon-Hablutzel/api-client/internal/usecase"
)

// Submitter sends one request and returns what the screen should show.
type Submitter interface {
	Execute(ctx context.Context, req domain.Request) usecase.Submission
}

type Deps struct {
	Submitter Submitter
	// LogFile names the history log in notices.
	LogFile string
	Crash   ports.CrashRecorder

	Logger *slog.Logger
	Debug  bool
}
