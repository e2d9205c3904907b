// Package history records executed requests. The file sink is the append-only
// text log; the SQLite store keeps structured rows for the history command.
package history

import (
	"context"
	"errors"
	"os"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

// Append writes text to the end of the file at path, creating it if absent.
// The file is opened and closed on every call; no handle is held.
func Append(path, text string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return ioError(path, err)
	}
	_, werr := f.WriteString(text)
	cerr := f.Close()
	if werr != nil {
		return ioError(path, werr)
	}
	if cerr != nil {
		return ioError(path, cerr)
	}
	return nil
}

// FileSink appends each entry's formatted text to a log file.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

var _ ports.HistorySink = (*FileSink)(nil)

func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Append(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Append(s.path, entry.Text)
}

// Multi fans an entry out to several sinks in order and stops at the first
// failure.
type Multi []ports.HistorySink

var _ ports.HistorySink = Multi(nil)

func (m Multi) Append(ctx context.Context, entry domain.HistoryEntry) error {
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func ioError(path string, err error) error {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return err
	}
	return &domain.OpError{
		Op:   "history.append",
		Kind: domain.KindIO,
		Path: path,
		Err:  err,
	}
}
