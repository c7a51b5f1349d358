package push

import (
	"github.com/deskhive/notifykit/pkg/notifications"
)

// Channel is a long-lived duplex connection over which the backend
// proactively sends notification events. Implementations deliver events on
// a single ordered queue with at-least-once semantics; consumers rely on
// the manager's idempotent merge for safety, never on exactly-once delivery.
type Channel interface {
	// Events returns the inbound event queue. The channel is closed when
	// the Channel shuts down for good.
	Events() <-chan notifications.Event

	// Connected reports the current connection status, read-only.
	Connected() bool

	// Close tears the channel down. Idempotent.
	Close() error
}
