package source

import (
	"context"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/pkg/logger"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a Provider with retry/backoff behavior so a single
// flaky request does not fail the whole tick.
type retryingProvider struct {
	inner       Provider
	logger      logger.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetrying wraps the given provider with retries. Non-positive
// maxAttempts/backoff fall back to defaults.
func NewRetrying(inner Provider, log logger.Logger, maxAttempts int, backoff time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      log,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) Fetch(ctx context.Context) (Table, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		table, err := r.inner.Fetch(ctx)
		if err == nil {
			return table, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		if r.logger != nil {
			r.logger.Warn(ctx, "source fetch retry",
				logger.Int("attempt", attempt),
				logger.Int("max_attempts", r.maxAttempts),
				logger.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return Table{}, ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	if r.logger != nil {
		r.logger.Warn(ctx, "source fetch failed",
			logger.Int("attempts", r.maxAttempts),
			logger.Error(lastErr),
		)
	}
	return Table{}, lastErr
}
