package notifications

import "errors"

var (
	ErrNilAPIClient        = errors.New("notifications: api client is required")
	ErrNilRepository       = errors.New("notifications: repository is required")
	ErrEmptyBaseURL        = errors.New("notifications: base URL is required")
	ErrEmptyNotificationID = errors.New("notifications: notification ID is required")
	ErrMalformedResponse   = errors.New("notifications: malformed response body")
)
