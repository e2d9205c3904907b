package reqfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

var errMissingRequests = errors.New("missing field `requests`")

// mapFile checks the document shape. Methods are left unvalidated: that
// happens per entry, when the entry is about to run.
func mapFile(path string, dto fileDTO) (domain.RequestFile, error) {
	if dto.Requests == nil {
		return domain.RequestFile{}, fileError(path, errMissingRequests)
	}

	out := domain.RequestFile{
		Path:    path,
		Entries: make([]domain.RequestEntry, 0, len(*dto.Requests)),
	}
	for i, e := range *dto.Requests {
		field := fmt.Sprintf("requests[%d]", i)
		if e.URL == nil || strings.TrimSpace(*e.URL) == "" {
			return domain.RequestFile{}, invalidField(path, field+".url", "url is required")
		}
		if e.Method == nil {
			return domain.RequestFile{}, invalidField(path, field+".method", "method is required")
		}
		out.Entries = append(out.Entries, domain.RequestEntry{
			URL:    *e.URL,
			Method: *e.Method,
			Body:   e.Body,
		})
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return fileError(path, fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig))
}

func fileError(path string, err error) error {
	return &domain.OpError{
		Op:   "reqfile.decode",
		Kind: domain.KindFile,
		Path: path,
		Err:  err,
	}
}
