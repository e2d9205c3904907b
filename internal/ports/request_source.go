package ports

import "github.com/Brendon-Hablutzel/api-client/internal/domain"

// RequestSource loads a batch file. Structural problems are fatal (KindFile).
type RequestSource interface {
	Load(path string) (domain.RequestFile, error)
}
