package apiclient

import (
	"context"
	"time"
)

const (
	// DefaultMaxAttempts bounds the retry loop when no override is given.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the wait after the first failed attempt.
	DefaultBaseDelay = time.Second
)

// retryOptions carries the retry policy for a single Retry call.
type retryOptions struct {
	maxAttempts int
	backoff     BackoffStrategy
}

// RetryOption configures a Retry call.
type RetryOption func(*retryOptions)

// WithMaxAttempts bounds the number of attempts. Values below 1 are ignored.
func WithMaxAttempts(n int) RetryOption {
	return func(o *retryOptions) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the wait after the first failed attempt. Subsequent
// waits double: baseDelay * 2^(attempt-1).
func WithBaseDelay(d time.Duration) RetryOption {
	return func(o *retryOptions) {
		if d > 0 {
			o.backoff = ExponentialBackoff{InitialInterval: d, Multiplier: 2}
		}
	}
}

// WithBackoff replaces the backoff strategy entirely.
func WithBackoff(strategy BackoffStrategy) RetryOption {
	return func(o *retryOptions) {
		if strategy != nil {
			o.backoff = strategy
		}
	}
}

// Retry invokes fn until it succeeds, the failure is not retry-eligible, or
// the attempt budget is exhausted. Each attempt is a fresh, independent call:
// fn must not carry side effects across attempts. Retries are silent; only
// the final failure propagates to the caller.
//
// The wait between attempts follows pure exponential backoff by default
// (baseDelay, then 2x, then 4x, ...), and respects context cancellation.
func Retry[T any](ctx context.Context, fn func(ctx context.Context) (T, error), opts ...RetryOption) (T, error) {
	options := &retryOptions{
		maxAttempts: DefaultMaxAttempts,
		backoff:     ExponentialBackoff{InitialInterval: DefaultBaseDelay, Multiplier: 2},
	}
	for _, opt := range opts {
		opt(options)
	}

	var zero T
	var lastErr error

	for attempt := 1; attempt <= options.maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Terminal failures and the final attempt re-raise immediately.
		if !IsRetryable(err) || attempt == options.maxAttempts {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(options.backoff.NextInterval(attempt)):
		}
	}

	return zero, lastErr
}
