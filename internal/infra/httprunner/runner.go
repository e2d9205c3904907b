package httprunner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/infra/httpclient"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

const defaultMaxBodyBytes = 1 << 20 // 1MB

// Runner is the request executor: it turns a Request into a Result and never
// lets an error escape. Transport failures become Result.Err; any HTTP
// response, 4xx and 5xx included, is a success.
type Runner struct {
	exec         *httpclient.Executor
	maxBodyBytes int64
	placeholder  string
	now          func() time.Time
	log          *slog.Logger
}

type Option func(*Runner)

func WithMaxBodyBytes(n int64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// WithBodyPlaceholder sets the text used when a response body cannot be read.
func WithBodyPlaceholder(s string) Option {
	return func(r *Runner) { r.placeholder = s }
}

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func New(client *http.Client, opts ...Option) *Runner {
	r := &Runner{
		maxBodyBytes: defaultMaxBodyBytes,
		placeholder:  domain.DefaultBodyPlaceholder,
		now:          time.Now,
		log:          slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	var timeout time.Duration
	if client != nil {
		timeout = client.Timeout
	}
	r.exec = httpclient.NewExecutor(
		httpclient.WithClient(client),
		httpclient.WithTimeout(timeout),
		httpclient.WithMaxBodyBytes(r.maxBodyBytes),
	)
	return r
}

var _ ports.RequestExecutor = (*Runner)(nil)

func (r *Runner) Execute(ctx context.Context, req domain.Request) domain.Result {
	result := domain.Result{
		Method:    req.Method,
		URL:       req.URL,
		Timestamp: r.now().UTC(),
	}

	httpReq, err := httpclient.BuildRequest(ctx, req)
	if err != nil {
		result.Err = buildError(err)
		r.log.Warn("request.invalid",
			"method", string(req.Method),
			"url", req.URL,
			"err", err,
		)
		return result
	}

	resp, err := r.exec.Do(ctx, httpReq)
	result.LatencyMS = resp.Duration.Milliseconds()
	if err != nil {
		result.Err = domain.NewRunError(err)
		r.log.Warn("request.error",
			"method", string(req.Method),
			"url", req.URL,
			"kind", string(result.Err.Kind),
			"message", result.Err.Message,
			"latency_ms", result.LatencyMS,
		)
		return result
	}

	result.StatusCode = resp.Status
	result.StatusReason = http.StatusText(resp.Status)

	if resp.ReadErr != nil {
		result.Body = r.placeholder
		r.log.Warn("request.body_unreadable",
			"method", string(req.Method),
			"url", req.URL,
			"status", resp.Status,
			"err", resp.ReadErr,
		)
	} else {
		result.Body = string(resp.BodyBytes)
		result.Truncated = resp.Truncated
	}

	r.log.Debug("request.ok",
		"method", string(req.Method),
		"url", req.URL,
		"status", result.StatusCode,
		"latency_ms", result.LatencyMS,
		"truncated", result.Truncated,
		"body_bytes", len(resp.BodyBytes),
	)
	return result
}

// buildError turns a BuildRequest failure into a RunError. A rejected method
// reads exactly "Invalid method"; anything else (e.g. an unparsable URL) is
// reported like a transport error.
func buildError(err error) *domain.RunError {
	if errors.Is(err, domain.ErrInvalidMethod) {
		return &domain.RunError{Kind: domain.RunErrorInvalid, Message: domain.ErrInvalidMethod.Error()}
	}
	return &domain.RunError{Kind: domain.RunErrorInvalid, Message: domain.Message(err)}
}
