package notifications

// EventKind discriminates push channel events.
type EventKind string

const (
	// EventNewNotification announces a notification created server-side.
	EventNewNotification EventKind = "notification"
	// EventCounterUpdate carries the server-confirmed unread counter.
	EventCounterUpdate EventKind = "counter"
)

// Event is one typed message from the push channel. The channel delivers
// events onto a single ordered queue; the manager applies them in arrival
// order with no reordering or coalescing.
type Event struct {
	Kind EventKind

	// Notification is set for EventNewNotification.
	Notification *Notification

	// Count is set for EventCounterUpdate.
	Count int
}

// NewNotificationEvent wraps a pushed notification.
func NewNotificationEvent(n Notification) Event {
	return Event{Kind: EventNewNotification, Notification: &n}
}

// CounterUpdateEvent wraps an authoritative unread counter value.
func CounterUpdateEvent(count int) Event {
	return Event{Kind: EventCounterUpdate, Count: count}
}
