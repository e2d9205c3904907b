package cli

import (
	"errors"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/crash"
	"github.com/Brendon-Hablutzel/api-client/internal/ui/tui"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFile    = 2
	ExitRequest = 3
	ExitIO      = 4
	ExitCrash   = 70
)

// ExitCode maps a command error onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var pe *crash.PanicError
	if errors.As(err, &pe) || errors.Is(err, tui.ErrCrashed) {
		return ExitCrash
	}

	var be *domain.BatchError
	switch {
	case errors.As(err, &be):
		return ExitRequest
	case domain.IsKind(err, domain.KindIO):
		return ExitIO
	case domain.IsKind(err, domain.KindFile):
		return ExitFile
	case domain.IsKind(err, domain.KindDecode):
		return ExitRequest
	default:
		return ExitFailure
	}
}
