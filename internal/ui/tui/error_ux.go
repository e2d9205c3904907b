package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// logNotice is the dialog text for a failed history write. The path comes from
// the failing sink when it reports one.
func logNotice(err error, logFile string) string {
	if err == nil {
		return ""
	}

	path := logFile
	var oe *domain.OpError
	if errors.As(err, &oe) && strings.TrimSpace(oe.Path) != "" {
		path = oe.Path
	}
	return fmt.Sprintf("Error logging to file %s: %s", path, domain.Message(err))
}
