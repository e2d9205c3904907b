package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// TimestampLayout is used for every printed or logged capture time.
const TimestampLayout = time.RFC3339

const truncatedMarker = "[truncated]"

// FormatResult renders one result as a report:
//
//	<STATUS> <REASON> for <METHOD> to <URL>
//	<BODY>
//
// or "ERROR: <message>" for a failure, optionally prefixed "<timestamp> - ".
func FormatResult(r domain.Result, withTimestamp bool) string {
	var b strings.Builder
	if withTimestamp {
		b.WriteString(r.Timestamp.UTC().Format(TimestampLayout))
		b.WriteString(" - ")
	}
	if r.Failed() {
		fmt.Fprintf(&b, "ERROR: %s\n", r.Err.Message)
		return b.String()
	}
	fmt.Fprintf(&b, "%d %s for %s to %s\n%s\n", r.StatusCode, r.StatusReason, r.Method, r.URL, responseBody(r))
	return b.String()
}

// FormatLogRecord is the history log form: always timestamped and followed by
// a blank separator line.
func FormatLogRecord(r domain.Result) string {
	return FormatResult(r, true) + "\n"
}

// FormatLabel is the one-line status shown above the response panel. Failures
// have no label.
func FormatLabel(r domain.Result) string {
	if r.Failed() {
		return ""
	}
	return fmt.Sprintf("Response: %d %s for %s", r.StatusCode, r.StatusReason, r.Method)
}

// FormatPanelBody is the response panel content.
func FormatPanelBody(r domain.Result) string {
	if r.Failed() {
		return "ERROR: " + r.Err.Message
	}
	return responseBody(r)
}

func responseBody(r domain.Result) string {
	if r.Truncated {
		return r.Body + "\n" + truncatedMarker
	}
	return r.Body
}
