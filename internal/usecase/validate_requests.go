package usecase

import (
	"context"
	"fmt"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
)

// InvalidEntry is a batch entry whose method would be rejected at run time.
type InvalidEntry struct {
	Index int
	Entry domain.RequestEntry
	Err   error
}

type ValidateRequests struct {
	source ports.RequestSource
}

func NewValidateRequests(src ports.RequestSource) *ValidateRequests {
	return &ValidateRequests{source: src}
}

// Execute decodes a batch file and checks every entry without sending
// anything. The invalid entries are returned alongside a KindDecode error
// when there are any.
func (uc *ValidateRequests) Execute(ctx context.Context, path string) (domain.RequestFile, []InvalidEntry, error) {
	file, err := uc.source.Load(path)
	if err != nil {
		return domain.RequestFile{}, nil, err
	}

	var invalid []InvalidEntry
	for i, e := range file.Entries {
		if err := ctx.Err(); err != nil {
			return file, invalid, err
		}
		if _, err := e.Descriptor(); err != nil {
			invalid = append(invalid, InvalidEntry{Index: i, Entry: e, Err: err})
		}
	}

	if len(invalid) > 0 {
		return file, invalid, &domain.OpError{
			Op:   "validate.requests",
			Kind: domain.KindDecode,
			Path: path,
			Err:  fmt.Errorf("%d of %d entries invalid: %w", len(invalid), len(file.Entries), domain.ErrInvalidMethod),
		}
	}
	return file, nil, nil
}
