package domain

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestClassifyRunError_Timeout_ContextDeadline(t *testing.T) {
	if got := ClassifyRunError(context.DeadlineExceeded); got != RunErrorTimeout {
		t.Fatalf("expected timeout, got=%s", got)
	}
}

func TestClassifyRunError_Timeout_NetError(t *testing.T) {
	err := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ETIMEDOUT}
	if got := ClassifyRunError(err); got != RunErrorConn && got != RunErrorTimeout {
		t.Fatalf("expected conn/timeout, got=%s", got)
	}
}

func TestClassifyRunError_DNS(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "example.invalid"}
	if got := ClassifyRunError(err); got != RunErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyRunError_ConnRefused(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	if got := ClassifyRunError(err); got != RunErrorConn {
		t.Fatalf("expected conn, got=%s", got)
	}
}

func TestClassifyRunError_URLWraps(t *testing.T) {
	inner := &net.DNSError{Err: "no such host", Name: "x.invalid"}
	err := &url.Error{Op: "Get", URL: "http://x.invalid", Err: inner}

	if got := ClassifyRunError(err); got != RunErrorDNS {
		t.Fatalf("expected dns, got=%s", got)
	}
}

func TestClassifyRunError_TLS(t *testing.T) {
	err := &url.Error{Op: "Get", URL: "https://x", Err: x509.UnknownAuthorityError{}}
	if got := ClassifyRunError(err); got != RunErrorTLS {
		t.Fatalf("expected tls, got=%s", got)
	}
}

func TestClassifyRunError_Unknown(t *testing.T) {
	if got := ClassifyRunError(errors.New("weird")); got != RunErrorUnknown {
		t.Fatalf("expected unknown, got=%s", got)
	}
}

func TestNewRunError(t *testing.T) {
	if NewRunError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	err := fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED})
	re := NewRunError(err)
	if re.Kind != RunErrorConn {
		t.Fatalf("expected conn, got %s", re.Kind)
	}
	if re.Message != err.Error() {
		t.Fatalf("expected transport text, got %q", re.Message)
	}
}

func TestResultFailed(t *testing.T) {
	if (Result{StatusCode: 500}).Failed() {
		t.Fatalf("HTTP 500 is not a failure")
	}
	if !(Result{Err: &RunError{Message: "x"}}).Failed() {
		t.Fatalf("expected failure when Err is set")
	}
}
