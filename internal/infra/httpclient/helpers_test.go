package httpclient

import (
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
)

func domainConfigWithTimeout(d time.Duration) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Timeout = d
	return cfg
}
