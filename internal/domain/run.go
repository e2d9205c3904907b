package domain

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"
)

// RunErrorKind is a high-level classification of runtime errors.
type RunErrorKind string

const (
	RunErrorUnknown RunErrorKind = "unknown"
	RunErrorTimeout RunErrorKind = "timeout"
	RunErrorDNS     RunErrorKind = "dns"
	RunErrorConn    RunErrorKind = "connection"
	RunErrorTLS     RunErrorKind = "tls"

	// RunErrorDecode marks an entry rejected before sending (bad method).
	RunErrorDecode RunErrorKind = "decode"
	// RunErrorInvalid marks a request the executor refused to build.
	RunErrorInvalid RunErrorKind = "invalid"
)

// RunError represents a failed attempt. Message is what gets reported.
type RunError struct {
	Kind    RunErrorKind
	Message string
}

// NewRunError converts a transport error into a RunError.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{Kind: ClassifyRunError(err), Message: err.Error()}
}

// ClassifyRunError maps a transport error onto a RunErrorKind.
func ClassifyRunError(err error) RunErrorKind {
	if err == nil {
		return RunErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return RunErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return RunErrorDNS
	}

	var (
		certErr    *tls.CertificateVerificationError
		headerErr  tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	if errors.As(err, &certErr) || errors.As(err, &headerErr) ||
		errors.As(err, &unknownCA) || errors.As(err, &hostErr) || errors.As(err, &invalidErr) {
		return RunErrorTLS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return RunErrorTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return RunErrorConn
	}

	return RunErrorUnknown
}

// Result is the normalized outcome of attempting one request.
// Err != nil means Failure; otherwise the Success fields are set,
// including for 4xx/5xx statuses.
type Result struct {
	Method HTTPMethod
	URL    string

	Timestamp time.Time
	LatencyMS int64

	StatusCode   int
	StatusReason string
	Body         string
	Truncated    bool

	Err *RunError
}

// Failed reports whether the attempt failed before an HTTP response arrived.
func (r Result) Failed() bool {
	return r.Err != nil
}

// BatchPolicy governs one batch run.
type BatchPolicy struct {
	StopEarlyOnFail bool

	// LogFile identifies the history sink, empty when logging is off.
	LogFile string

	// Timestamps prefixes console reports with the capture time.
	// History records are always timestamped.
	Timestamps bool
}

// BatchSummary counts what a batch run did.
type BatchSummary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Stopped   bool
}

// HistoryEntry is one record handed to a history sink.
type HistoryEntry struct {
	ID    string
	RunID string

	Result Result

	// Text is the formatted, timestamped record.
	Text string
}
