package httpclient

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// BuildRequest maps a domain Request onto an *http.Request.
//
// Only POST carries the body (empty when absent). GET, DELETE and PATCH are
// sent without one even if the descriptor has a body. Any other method is
// rejected with domain.ErrInvalidMethod.
func BuildRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidRequest,
		}
	}

	var body io.Reader
	switch req.Method {
	case domain.MethodGet, domain.MethodDelete, domain.MethodPatch:
		body = nil
	case domain.MethodPost:
		body = strings.NewReader(req.BodyText())
	default:
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidMethod,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return httpReq, nil
}
