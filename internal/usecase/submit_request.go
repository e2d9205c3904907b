package usecase

import (
	"context"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

// Submission is what the interactive screen shows after one request.
type Submission struct {
	Result domain.Result
	Label  string
	Body   string
	// LogErr is a history write failure. It never affects Label or Body.
	LogErr error
}

type SubmitRequest struct {
	executor ports.RequestExecutor
	history  ports.HistorySink
	opts     options
}

// NewSubmitRequest builds the interactive use case. history may be nil.
func NewSubmitRequest(exec ports.RequestExecutor, history ports.HistorySink, opts ...Option) *SubmitRequest {
	return &SubmitRequest{
		executor: exec,
		history:  history,
		opts:     buildOptions(opts),
	}
}

func (uc *SubmitRequest) Execute(ctx context.Context, req domain.Request) Submission {
	res := uc.executor.Execute(ctx, req)

	out := Submission{
		Result: res,
		Label:  FormatLabel(res),
		Body:   FormatPanelBody(res),
	}

	if uc.history != nil {
		err := uc.history.Append(ctx, domain.HistoryEntry{
			ID:     uc.opts.newID(),
			Result: res,
			Text:   FormatLogRecord(res),
		})
		if err != nil {
			uc.opts.log.Error("history.append.failed",
				"method", string(req.Method),
				"url", req.URL,
				"err", err,
			)
			out.LogErr = err
		}
	}

	uc.opts.log.Info("submit.done",
		"method", string(req.Method),
		"url", req.URL,
		"status", res.StatusCode,
		"failed", res.Failed(),
	)
	return out
}
