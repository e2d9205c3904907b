// Package crash records unrecovered panics to a diagnostics file.
package crash

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/buildinfo"
	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
	"github.com/google/uuid"
)

// Report is the JSON document written for one crash.
type Report struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Version string    `json:"version"`
	Where   string    `json:"where"`
	Panic   string    `json:"panic"`
	Stack   string    `json:"stack"`
}

// PanicError is returned by Guard after a panic was recovered and recorded.
type PanicError struct {
	Report Report
	// WriteErr is set when the report could not be persisted.
	WriteErr error
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %s", e.Report.Where, e.Report.Panic)
}

// Boundary writes crash reports to Path. Each report replaces the previous one.
type Boundary struct {
	Path string

	now func() time.Time
	log *slog.Logger
}

type Option func(*Boundary)

func WithNow(now func() time.Time) Option {
	return func(b *Boundary) { b.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Boundary) {
		if l != nil {
			b.log = l
		}
	}
}

func NewBoundary(path string, opts ...Option) *Boundary {
	b := &Boundary{
		Path: path,
		now:  time.Now,
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.CrashRecorder = (*Boundary)(nil)

// Record persists a recovered panic value.
func (b *Boundary) Record(where string, recovered any, stack []byte) error {
	_, err := b.record(where, recovered, stack)
	return err
}

func (b *Boundary) record(where string, recovered any, stack []byte) (Report, error) {
	rep := Report{
		ID:      uuid.NewString(),
		Time:    b.now().UTC(),
		Version: buildinfo.Version,
		Where:   where,
		Panic:   fmt.Sprint(recovered),
		Stack:   string(stack),
	}

	b.log.Error("panic.recovered",
		"id", rep.ID,
		"where", where,
		"panic", rep.Panic,
		"crash_log", b.Path,
	)

	if b.Path == "" {
		return rep, nil
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return rep, b.writeError(err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(b.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return rep, b.writeError(err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return rep, b.writeError(werr)
	}
	if cerr != nil {
		return rep, b.writeError(cerr)
	}
	return rep, nil
}

// Guard runs fn and converts a panic into a recorded *PanicError.
func (b *Boundary) Guard(where string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rep, werr := b.record(where, r, debug.Stack())
			err = &PanicError{Report: rep, WriteErr: werr}
		}
	}()
	return fn()
}

func (b *Boundary) writeError(err error) error {
	return &domain.OpError{
		Op:   "crash.record",
		Kind: domain.KindIO,
		Path: b.Path,
		Err:  err,
	}
}
