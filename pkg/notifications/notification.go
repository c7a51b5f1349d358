package notifications

import (
	"time"
)

// Category classifies a notification within the closed set the backend emits.
type Category string

const (
	CategoryReservation Category = "reservation"
	CategorySystem      Category = "system"
	CategoryReminder    Category = "reminder"
)

// Priority represents the notification priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Action is an optional call-to-action attached to a notification: a
// URL-like pointer plus an optional related-entity identifier.
type Action struct {
	URL      string `json:"url"`
	TargetID string `json:"target_id,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Notification is one message delivered to the current user.
//
// The identifier is assigned by the backend and immutable; CreatedAt never
// changes; the read flag is monotonic: once true this subsystem never
// transitions it back to false.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Action    *Action   `json:"action,omitempty"`
}

// MarkAsRead flips the read flag. There is no inverse operation.
func (n *Notification) MarkAsRead() {
	n.Read = true
}
