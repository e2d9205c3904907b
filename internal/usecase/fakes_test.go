package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// scriptedExecutor answers each call from a per-URL table and records the
// requests it saw.
type scriptedExecutor struct {
	byURL map[string]domain.Result
	seen  []domain.Request
}

func (s *scriptedExecutor) Execute(_ context.Context, req domain.Request) domain.Result {
	s.seen = append(s.seen, req)
	res, ok := s.byURL[req.URL]
	if !ok {
		res = domain.Result{StatusCode: 200, StatusReason: "OK"}
	}
	res.Method = req.Method
	res.URL = req.URL
	res.Timestamp = fixedTime
	return res
}

func okResult(code int, reason, body string) domain.Result {
	return domain.Result{StatusCode: code, StatusReason: reason, Body: body}
}

func failResult(msg string) domain.Result {
	return domain.Result{Err: &domain.RunError{Kind: domain.RunErrorConn, Message: msg}}
}

type memorySink struct {
	entries []domain.HistoryEntry
}

func (m *memorySink) Append(_ context.Context, e domain.HistoryEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

type failingSink struct {
	calls int
}

func (f *failingSink) Append(_ context.Context, _ domain.HistoryEntry) error {
	f.calls++
	return errors.New("disk full")
}

type fakeSource struct {
	file domain.RequestFile
	err  error
}

func (f fakeSource) Load(path string) (domain.RequestFile, error) {
	if f.err != nil {
		return domain.RequestFile{}, f.err
	}
	out := f.file
	out.Path = path
	return out, nil
}

func collect(reports *[]Report) EmitFunc {
	return func(r Report) error {
		*reports = append(*reports, r)
		return nil
	}
}

func fixedIDs() Option {
	n := 0
	return WithIDs(func() string {
		n++
		return "id-" + string(rune('0'+n))
	})
}
