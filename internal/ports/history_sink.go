package ports

import (
	"context"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// HistorySink appends a record to an append-only history.
type HistorySink interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
}

// HistoryReader lists previously recorded entries, newest first.
type HistoryReader interface {
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
