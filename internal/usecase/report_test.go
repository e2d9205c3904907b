package usecase

import (
	"testing"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

func TestFormatResult_Success(t *testing.T) {
	r := okResult(404, "Not Found", "missing")
	r.Method = domain.MethodGet
	r.URL = "https://example.com/x"
	r.Timestamp = fixedTime

	got := FormatResult(r, false)
	want := "404 Not Found for GET to https://example.com/x\nmissing\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got = FormatResult(r, true)
	want = "2024-05-01T12:00:00Z - " + want
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatResult_Failure(t *testing.T) {
	r := failResult("connection refused")
	r.Timestamp = fixedTime

	if got := FormatResult(r, false); got != "ERROR: connection refused\n" {
		t.Fatalf("unexpected report: %q", got)
	}
	if got := FormatLogRecord(r); got != "2024-05-01T12:00:00Z - ERROR: connection refused\n\n" {
		t.Fatalf("unexpected log record: %q", got)
	}
}

func TestFormatResult_UnknownReasonKeepsShape(t *testing.T) {
	r := okResult(599, "", "")
	r.Method = domain.MethodPatch
	r.URL = "http://x"

	if got := FormatResult(r, false); got != "599  for PATCH to http://x\n\n" {
		t.Fatalf("unexpected report: %q", got)
	}
}

func TestFormatResult_Truncated(t *testing.T) {
	r := okResult(200, "OK", "abc")
	r.Method = domain.MethodGet
	r.URL = "http://x"
	r.Truncated = true

	want := "200 OK for GET to http://x\nabc\n[truncated]\n"
	if got := FormatResult(r, false); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatLabelAndPanel(t *testing.T) {
	ok := okResult(201, "Created", "{}")
	ok.Method = domain.MethodPost

	if got := FormatLabel(ok); got != "Response: 201 Created for POST" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := FormatPanelBody(ok); got != "{}" {
		t.Fatalf("unexpected panel: %q", got)
	}

	bad := failResult("dns failure")
	if got := FormatLabel(bad); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
	if got := FormatPanelBody(bad); got != "ERROR: dns failure" {
		t.Fatalf("unexpected panel: %q", got)
	}
}
