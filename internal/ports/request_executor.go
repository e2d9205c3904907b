package ports

import (
	"context"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

// RequestExecutor sends one request and normalizes the outcome.
// Implementations never return an error: failures are carried in the Result.
type RequestExecutor interface {
	Execute(ctx context.Context, req domain.Request) domain.Result
}
