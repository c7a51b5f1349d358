// Package apiclient is the single choke point for outbound calls to the
// reservation backend. It centralizes failure classification, user-facing
// error messaging, diagnostic auditing, and retry policy.
//
// # Failure taxonomy
//
// Every failed call produces a structured *Error carrying a human-readable
// message, the HTTP status (when a response was obtained), a Category, and a
// retry-eligibility flag:
//
//   - CategoryNetwork: no response obtained, always retry-eligible
//   - CategoryClient:  4xx, terminal, repeating the request cannot succeed
//   - CategoryServer:  5xx, transient, retry-eligible
//   - CategoryUnknown: unmapped status, non-retryable by default
//
// Every failure is appended to the injected audit log before it is returned.
// Non-suppressed failures surface exactly one notice through the alert sink;
// a 401 never does, because the authenticated transport handles token
// refresh upstream.
//
// # Retry
//
// Retry is a caller-level policy, applied only where idempotence is safe:
//
//	result, err := apiclient.Retry(ctx, func(ctx context.Context) (*ListResult, error) {
//	    return repo.List(ctx, 1, 20)
//	}, apiclient.WithMaxAttempts(3), apiclient.WithBaseDelay(time.Second))
//
// Failed attempts wait baseDelay * 2^(attempt-1) before the next one.
// Non-retryable failures and exhaustion re-raise immediately.
package apiclient
