package domain

import "fmt"

// HTTPMethod is one of the verbs the runner knows how to send.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// Methods lists the supported methods in display order.
func Methods() []HTTPMethod {
	return []HTTPMethod{MethodGet, MethodPost, MethodDelete, MethodPatch}
}

// ParseMethod matches s exactly (case-sensitive) against the supported methods.
func ParseMethod(s string) (HTTPMethod, bool) {
	switch HTTPMethod(s) {
	case MethodGet, MethodPost, MethodDelete, MethodPatch:
		return HTTPMethod(s), true
	default:
		return "", false
	}
}

// AcceptsBody reports whether the body is transmitted for m.
// Only POST carries a payload; GET, DELETE and PATCH never do.
func (m HTTPMethod) AcceptsBody() bool {
	return m == MethodPost
}

// Request is a validated, immutable description of one HTTP call.
type Request struct {
	Method HTTPMethod
	URL    string

	// Body is optional; nil is equivalent to "" for methods that accept a body.
	Body *string
}

// NewRequest builds a Request. The method is assumed to come from a closed
// selection (the TUI method list); batch input goes through RequestEntry.Descriptor.
func NewRequest(method HTTPMethod, url string, body *string) Request {
	return Request{Method: method, URL: url, Body: body}
}

// BodyText returns the body or "" when absent.
func (r Request) BodyText() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// RequestEntry is one raw method/URL/body triple from a batch file.
// Its method has not been validated yet.
type RequestEntry struct {
	URL    string
	Method string
	Body   *string
}

// Descriptor validates the entry's method and returns the executable Request.
// An unsupported method yields a KindDecode error naming the method and URL.
func (e RequestEntry) Descriptor() (Request, error) {
	m, ok := ParseMethod(e.Method)
	if !ok {
		return Request{}, &OpError{
			Op:   "request.decode",
			Kind: KindDecode,
			Err:  fmt.Errorf("%w: %s to %s", ErrInvalidMethod, e.Method, e.URL),
		}
	}
	return Request{Method: m, URL: e.URL, Body: e.Body}, nil
}

// RequestFile is a decoded batch document: an ordered list of entries.
type RequestFile struct {
	Path    string
	Entries []RequestEntry
}
