package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type options struct {
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option configures the batch and interactive use cases.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithNow overrides the clock used for entries that never reach the executor.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDs overrides run and history entry ID generation.
func WithIDs(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
