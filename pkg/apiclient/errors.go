package apiclient

import (
	"errors"
	"fmt"
)

// Category classifies a failed call for retry decisions.
type Category string

const (
	// CategoryNetwork means no response was obtained (connectivity loss,
	// DNS failure, aborted connection). Always retry-eligible.
	CategoryNetwork Category = "network"
	// CategoryClient covers 4xx responses. The request itself is at fault,
	// so repeating it verbatim cannot succeed: never retry-eligible.
	CategoryClient Category = "client"
	// CategoryServer covers 5xx responses. Server-side failures are assumed
	// transient: retry-eligible.
	CategoryServer Category = "server"
	// CategoryUnknown covers statuses outside the mapped taxonomy.
	// Treated as non-retryable by default.
	CategoryUnknown Category = "unknown"
)

var (
	ErrRequestFailed = errors.New("request failed")
	ErrNoConnection  = errors.New("no connection")
	ErrNilRequest    = errors.New("request is required")
)

// Error is the structured failure every call through the client produces.
// StatusCode is zero when no response was obtained.
type Error struct {
	Message    string
	StatusCode int
	Category   Category
	Retryable  bool
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsRetryable reports whether err carries a retry-eligible classification.
// Errors that did not pass through the client are not retry-eligible.
func IsRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return false
}

// StatusOf extracts the HTTP status from a classified error.
// Returns zero for network failures and foreign errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
