package push

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/deskhive/notifykit/pkg/notifications"
)

// MemoryChannel is an in-process Channel implementation.
// Suitable for development, tests, and wiring UI previews without a backend.
type MemoryChannel struct {
	events    chan notifications.Event
	connected atomic.Bool
	closed    bool
	mu        sync.Mutex
}

// NewMemoryChannel creates an in-memory channel with the given queue buffer.
// A minimum buffer of 1 is enforced. The channel starts connected.
func NewMemoryChannel(bufferSize int) *MemoryChannel {
	c := &MemoryChannel{
		events: make(chan notifications.Event, max(bufferSize, 1)),
	}
	c.connected.Store(true)
	return c
}

func (c *MemoryChannel) Events() <-chan notifications.Event {
	return c.events
}

func (c *MemoryChannel) Connected() bool {
	return c.connected.Load()
}

// SetConnected flips the reported connection status without affecting
// delivery. Lets tests exercise the read-only status surface.
func (c *MemoryChannel) SetConnected(connected bool) {
	c.connected.Store(connected)
}

// PublishNotification enqueues a new-notification event. A payload without
// an identifier gets one assigned so the idempotent merge stays keyed.
// Returns false if the event was dropped (queue full or channel closed).
func (c *MemoryChannel) PublishNotification(n notifications.Notification) bool {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return c.publish(notifications.NewNotificationEvent(n))
}

// PublishCounter enqueues an authoritative counter-update event.
// Returns false if the event was dropped.
func (c *MemoryChannel) PublishCounter(count int) bool {
	return c.publish(notifications.CounterUpdateEvent(count))
}

func (c *MemoryChannel) publish(ev notifications.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.events <- ev:
		return true
	default:
		// Queue full: drop rather than block the publisher.
		return false
	}
}

// Close shuts the channel down and closes the event queue.
func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		c.connected.Store(false)
		close(c.events)
	}
	return nil
}

var _ Channel = (*MemoryChannel)(nil)
