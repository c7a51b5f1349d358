package apiclient

import "net/http"

// classification is the mapped outcome of a non-success status code.
type classification struct {
	cause     string
	category  Category
	retryable bool
}

// statusCauses maps well-known status codes to human-readable causes.
// Codes outside this map fall back to the range rules in classify.
var statusCauses = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusConflict:            "conflict",
	http.StatusUnprocessableEntity: "validation failed",
	http.StatusTooManyRequests:     "rate limited",
	http.StatusInternalServerError: "server error",
	http.StatusBadGateway:          "bad gateway",
	http.StatusServiceUnavailable:  "service unavailable",
	http.StatusGatewayTimeout:      "gateway timeout",
}

// classify maps a non-success status code onto the failure taxonomy.
// Only 5xx statuses are retry-eligible: a 4xx indicates a problem that will
// not resolve by repeating the identical request.
func classify(statusCode int) classification {
	cause, mapped := statusCauses[statusCode]

	switch {
	case statusCode >= 500 && statusCode < 600:
		if !mapped {
			cause = "server error"
		}
		return classification{cause: cause, category: CategoryServer, retryable: true}
	case statusCode >= 400 && statusCode < 500:
		if !mapped {
			cause = "request rejected"
		}
		return classification{cause: cause, category: CategoryClient, retryable: false}
	default:
		return classification{cause: "unexpected response", category: CategoryUnknown, retryable: false}
	}
}
