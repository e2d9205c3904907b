package usecase

import (
	"context"
	"fmt"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

// Report is one emitted batch entry.
type Report struct {
	Index  int
	Result domain.Result
	// Text is the console rendering of Result.
	Text string
}

// EmitFunc receives reports in entry order. Returning an error stops the run.
type EmitFunc func(Report) error

type RunBatch struct {
	executor ports.RequestExecutor
	history  ports.HistorySink
	opts     options
}

// NewRunBatch builds the batch use case. history may be nil when no log is
// configured.
func NewRunBatch(exec ports.RequestExecutor, history ports.HistorySink, opts ...Option) *RunBatch {
	return &RunBatch{
		executor: exec,
		history:  history,
		opts:     buildOptions(opts),
	}
}

// Execute runs the entries of file strictly in order. Each entry is decoded,
// executed, logged and then emitted.
//
// Under StopEarlyOnFail the first failing entry is still logged and emitted,
// after which the run returns a *domain.BatchError and no later entry is
// attempted. A history write failure ends the run at once with a KindIO error.
func (uc *RunBatch) Execute(ctx context.Context, file domain.RequestFile, policy domain.BatchPolicy, emit EmitFunc) (domain.BatchSummary, error) {
	log := uc.opts.log
	summary := domain.BatchSummary{RunID: uc.opts.newID()}

	log.Info("batch.start",
		"run_id", summary.RunID,
		"path", file.Path,
		"entries", len(file.Entries),
		"stop_early", policy.StopEarlyOnFail,
		"log_file", policy.LogFile,
	)

	for i, entry := range file.Entries {
		if err := ctx.Err(); err != nil {
			log.Warn("batch.canceled", "run_id", summary.RunID, "index", i, "err", err)
			return summary, err
		}

		res := uc.runEntry(ctx, entry)
		summary.Total++
		if res.Failed() {
			summary.Failed++
		} else {
			summary.Succeeded++
		}

		log.Debug("batch.entry",
			"run_id", summary.RunID,
			"index", i,
			"method", string(res.Method),
			"url", res.URL,
			"status", res.StatusCode,
			"failed", res.Failed(),
		)

		if uc.history != nil {
			err := uc.history.Append(ctx, domain.HistoryEntry{
				ID:     uc.opts.newID(),
				RunID:  summary.RunID,
				Result: res,
				Text:   FormatLogRecord(res),
			})
			if err != nil {
				log.Error("history.append.failed", "run_id", summary.RunID, "index", i, "err", err)
				return summary, historyError(policy.LogFile, err)
			}
		}

		report := Report{Index: i, Result: res, Text: FormatResult(res, policy.Timestamps)}
		if err := emit(report); err != nil {
			return summary, err
		}

		if res.Failed() && policy.StopEarlyOnFail {
			summary.Stopped = true
			log.Info("batch.stopped",
				"run_id", summary.RunID,
				"index", i,
				"reason", res.Err.Message,
			)
			return summary, &domain.BatchError{
				Index:  i,
				Reason: res.Err.Message,
				Report: report.Text,
			}
		}
	}

	log.Info("batch.done",
		"run_id", summary.RunID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary, nil
}

// runEntry validates the method first; a rejected entry never reaches the
// executor.
func (uc *RunBatch) runEntry(ctx context.Context, entry domain.RequestEntry) domain.Result {
	req, err := entry.Descriptor()
	if err != nil {
		return domain.Result{
			Method:    domain.HTTPMethod(entry.Method),
			URL:       entry.URL,
			Timestamp: uc.opts.now().UTC(),
			Err: &domain.RunError{
				Kind:    domain.RunErrorDecode,
				Message: domain.Message(err),
			},
		}
	}
	return uc.executor.Execute(ctx, req)
}

func historyError(path string, err error) error {
	if !domain.IsKind(err, domain.KindIO) {
		err = &domain.OpError{
			Op:   "batch.history",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return fmt.Errorf("history log: %w", err)
}
