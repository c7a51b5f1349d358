package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/deskhive/notifykit/pkg/alerts"
	"github.com/deskhive/notifykit/pkg/logger"
)

// DefaultPageSize is used when no page size has been established yet.
const DefaultPageSize = 20

// loadState tracks the collection-level lifecycle: Idle until the first
// fetch, Loading while that fetch is outstanding, Ready afterwards. There is
// no terminal error state: a failed fetch keeps the previous Ready data.
type loadState int

const (
	stateIdle loadState = iota
	stateLoading
	stateReady
)

// Snapshot is the read surface handed to the UI. All fields are copies;
// consumers must not expect later mutations to be reflected.
type Snapshot struct {
	Notifications []Notification
	UnreadCount   int
	Loading       bool
	Connected     bool
}

// Manager owns the in-memory notification window and unread counter,
// merging push-delivered events with fetch results. It is the single point
// of mutation: collaborators read snapshots and never write.
//
// Mutations are optimistic: local state changes before the network call and
// is not rolled back on failure. Divergence is corrected by the next fetch
// or the next authoritative counter-update event.
type Manager struct {
	repo      Repository
	alerts    alerts.Sink
	logger    *slog.Logger
	connected func() bool

	items    []Notification // newest first
	unread   int
	state    loadState
	page     int
	pageSize int

	mu sync.Mutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithAlertSink sets the sink new-notification toasts are forwarded to.
func WithAlertSink(sink alerts.Sink) ManagerOption {
	return func(m *Manager) {
		if sink != nil {
			m.alerts = sink
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithConnectionStatus wires the push channel's connected flag into
// snapshots. The manager only reads it.
func WithConnectionStatus(connected func() bool) ManagerOption {
	return func(m *Manager) {
		if connected != nil {
			m.connected = connected
		}
	}
}

// NewManager creates a notification state manager on top of the given
// repository.
func NewManager(repo Repository, opts ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}

	m := &Manager{
		repo:      repo,
		alerts:    alerts.NoopSink{},
		logger:    slog.Default(),
		connected: func() bool { return false },
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Run consumes push events until ctx is cancelled or the channel closes.
// Events are applied in arrival order, each to completion, so handlers never
// interleave.
func (m *Manager) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.Apply(ctx, ev)
		}
	}
}

// Apply processes a single push event. Exposed for adapters that deliver
// events by direct call instead of a channel.
func (m *Manager) Apply(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventNewNotification:
		if ev.Notification != nil {
			m.applyNotification(ctx, *ev.Notification)
		}
	case EventCounterUpdate:
		m.applyCounter(ev.Count)
	default:
		m.logger.LogAttrs(ctx, slog.LevelDebug, "ignoring unknown push event",
			logger.Component("notifications"),
			logger.Event(string(ev.Kind)),
		)
	}
}

// applyNotification merges a pushed notification. Re-delivery of an
// identifier already present is a no-op, which makes at-least-once delivery
// safe.
func (m *Manager) applyNotification(ctx context.Context, n Notification) {
	m.mu.Lock()
	if m.indexOf(n.ID) >= 0 {
		m.mu.Unlock()
		return
	}
	m.items = append([]Notification{n}, m.items...)
	if !n.Read {
		m.unread++
	}
	m.mu.Unlock()

	toast := alerts.Toast{Title: n.Title, Message: n.Message}
	if n.Action != nil {
		toast.ActionURL = n.Action.URL
		toast.ActionLabel = n.Action.Label
	}
	m.alerts.ShowToast(ctx, toast)
}

// applyCounter overwrites the unread counter. The event reflects
// server-confirmed state and wins over any optimistic local adjustment.
func (m *Manager) applyCounter(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unread = max(0, count)
}

// Fetch loads one page and replaces the local window with it, then refreshes
// the unread counter independently. On failure the previous window and
// counter stay untouched (stale but valid) and Fetch reports false.
func (m *Manager) Fetch(ctx context.Context, page, pageSize int) bool {
	m.mu.Lock()
	if m.state == stateIdle {
		m.state = stateLoading
	}
	m.mu.Unlock()

	result, err := m.repo.List(ctx, page, pageSize)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "fetch failed, keeping previous data",
			logger.Component("notifications"),
			logger.Error(err),
		)
		m.mu.Lock()
		if m.state == stateLoading {
			m.state = stateIdle
		}
		m.mu.Unlock()
		return false
	}

	m.mu.Lock()
	m.items = append([]Notification(nil), result.Items...)
	m.page = page
	m.pageSize = pageSize
	m.state = stateReady
	m.mu.Unlock()

	m.refreshUnread(ctx)
	return true
}

// LoadFirstPage fetches the first page, replacing the window.
func (m *Manager) LoadFirstPage(ctx context.Context, pageSize int) bool {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return m.Fetch(ctx, 1, pageSize)
}

// LoadNextPage fetches the page after the last fetched one and appends it
// below the current window, deduplicating against push-prepended items.
func (m *Manager) LoadNextPage(ctx context.Context) bool {
	m.mu.Lock()
	page := m.page + 1
	pageSize := m.pageSize
	m.mu.Unlock()
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	result, err := m.repo.List(ctx, page, pageSize)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "load-more failed, keeping current window",
			logger.Component("notifications"),
			logger.Error(err),
		)
		return false
	}

	m.mu.Lock()
	for _, item := range result.Items {
		if m.indexOf(item.ID) < 0 {
			m.items = append(m.items, item)
		}
	}
	m.page = page
	m.state = stateReady
	m.mu.Unlock()
	return true
}

// MarkRead optimistically flips the local read flag and decrements the
// counter before issuing the network call. A failed call is reported via the
// return value but the local change stands.
func (m *Manager) MarkRead(ctx context.Context, id string) bool {
	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 && !m.items[i].Read {
		m.items[i].MarkAsRead()
		if m.unread > 0 {
			m.unread--
		}
	}
	m.mu.Unlock()

	if err := m.repo.MarkRead(ctx, id); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "mark-read not confirmed by backend",
			logger.Component("notifications"),
			logger.NotificationID(id),
			logger.Error(err),
		)
		return false
	}
	return true
}

// MarkReadOnHover is the guarded variant of MarkRead: already-read targets
// are treated as success without a network call, so repeated hover events
// stay cheap.
func (m *Manager) MarkReadOnHover(ctx context.Context, id string) bool {
	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 && m.items[i].Read {
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()

	return m.MarkRead(ctx, id)
}

// DeleteOne removes the notification locally, decrementing the counter only
// if the removed item was unread, then issues the network delete. The local
// removal is not reverted on failure.
func (m *Manager) DeleteOne(ctx context.Context, id string) bool {
	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 {
		if !m.items[i].Read && m.unread > 0 {
			m.unread--
		}
		m.items = append(m.items[:i], m.items[i+1:]...)
	}
	m.mu.Unlock()

	if err := m.repo.Delete(ctx, id); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "delete not confirmed by backend",
			logger.Component("notifications"),
			logger.NotificationID(id),
			logger.Error(err),
		)
		return false
	}
	return true
}

// MarkAllRead flips every local item to read and zeroes the counter, then
// issues the bulk call.
func (m *Manager) MarkAllRead(ctx context.Context) bool {
	m.mu.Lock()
	for i := range m.items {
		m.items[i].MarkAsRead()
	}
	m.unread = 0
	m.mu.Unlock()

	if err := m.repo.MarkAllRead(ctx); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "mark-all-read not confirmed by backend",
			logger.Component("notifications"),
			logger.Error(err),
		)
		return false
	}
	return true
}

// DeleteAll empties the local window and subtracts the removed unread items
// from the counter (floored at zero), then issues the bulk delete.
func (m *Manager) DeleteAll(ctx context.Context) bool {
	m.mu.Lock()
	removedUnread := 0
	for i := range m.items {
		if !m.items[i].Read {
			removedUnread++
		}
	}
	m.items = nil
	m.unread = max(0, m.unread-removedUnread)
	m.mu.Unlock()

	deleted, err := m.repo.DeleteAll(ctx)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "delete-all not confirmed by backend",
			logger.Component("notifications"),
			logger.Error(err),
		)
		return false
	}

	m.logger.LogAttrs(ctx, slog.LevelDebug, "cleared notifications",
		logger.Component("notifications"),
		slog.Int("deleted_count", deleted),
	)
	return true
}

// Snapshot returns a copy of the current state for rendering.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	items := append([]Notification(nil), m.items...)
	unread := m.unread
	loading := m.state == stateLoading
	m.mu.Unlock()

	return Snapshot{
		Notifications: items,
		UnreadCount:   unread,
		Loading:       loading,
		Connected:     m.connected(),
	}
}

// UnreadCount returns the current unread counter.
func (m *Manager) UnreadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

// refreshUnread pulls the authoritative counter after a successful fetch.
// A failed refresh keeps the optimistic local value.
func (m *Manager) refreshUnread(ctx context.Context) {
	count, err := m.repo.UnreadCount(ctx)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "unread refresh failed, keeping local counter",
			logger.Component("notifications"),
			logger.Error(err),
		)
		return
	}

	m.mu.Lock()
	m.unread = max(0, count)
	m.mu.Unlock()
}

// indexOf must be called with the lock held.
func (m *Manager) indexOf(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}
