package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/novelctx"
)

// RetryFunc is notified before each retry with the upcoming attempt number
// (starting at 2) and the error that caused it.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry calls fn until it succeeds, fails with an error that is not a
// fetch error, or runs out of delays. Only ETIMEOUT and ETRANSPORT are
// retried; extraction errors would fail the same way again.
func Retry[T any](ctx context.Context, delays []time.Duration, fn func(context.Context) (T, error), onRetry RetryFunc) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !novelctx.IsFetchError(err) || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		t := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}

	return zero, lastErr
}
