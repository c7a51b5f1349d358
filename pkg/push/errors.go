package push

import "errors"

var (
	ErrInvalidURL = errors.New("push: invalid endpoint URL")
	ErrDialFailed = errors.New("push: failed to connect")
)
