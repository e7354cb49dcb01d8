package db

import (
	"context"
	"fmt"
	"time"
)

// Connect retries an open function a bounded number of times with a fixed
// backoff. The initial store connection is the only retry-worthy operation
// in the process; once it fails for good the caller surfaces a fatal
// data-unavailable error.
func Connect[T any](ctx context.Context, attempts int, backoff time.Duration, open func(context.Context) (T, error)) (T, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var zero T
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}
		value, err := open(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
	}
	return zero, fmt.Errorf("platform/db: connect after %d attempts: %w", attempts, lastErr)
}
