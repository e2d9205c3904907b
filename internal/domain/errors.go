package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrInvalidRequest = errors.New("invalid request")
	ErrExecution      = errors.New("execution error")

	// ErrInvalidMethod is surfaced verbatim in reports, hence the capital.
	ErrInvalidMethod = errors.New("Invalid method") //nolint:staticcheck
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"

	// KindDecode marks a single batch entry that cannot become a Request.
	KindDecode ErrorKind = "decode"
	// KindFile marks an unreadable or malformed batch file. Always fatal.
	KindFile ErrorKind = "file"
	// KindIO marks a history log write failure.
	KindIO ErrorKind = "io"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Message returns the user-facing text of err: for an OpError, the text of the
// wrapped cause without the op/kind prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var oe *OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}

// BatchError terminates a stop-early batch run at the first failing entry.
type BatchError struct {
	// Index is the zero-based position of the failing entry.
	Index int
	// Reason is the failure text of the entry (transport or decode message).
	Reason string
	// Report is the entry's formatted report, as printed.
	Report string
}

func (e *BatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Report != "" {
		return e.Report
	}
	return "ERROR: " + e.Reason
}
