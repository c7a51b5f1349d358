// Package notifications keeps a locally-cached view of the current user's
// notifications consistent between an asynchronous push channel and
// on-demand REST fetches.
//
// # Architecture
//
//   - Client: typed repository façade over the resilient API client
//   - Manager: the in-memory state machine merging push events and fetches
//   - Event: typed push channel messages applied by the Manager
//
// The Manager holds a sliding window of notifications (newest first, no
// duplicate identifiers) and the unread counter. Fetches replace the window;
// push-delivered notifications are prepended with an idempotent merge by
// identifier, so at-least-once delivery is safe. Counter-update events are
// authoritative and overwrite any optimistic local value.
//
// # Optimistic mutations
//
// MarkRead, DeleteOne and the bulk variants mutate local state before the
// network call and deliberately do not roll back on failure. The UI stays
// responsive; a transient local/server divergence is corrected by the next
// fetch or the next counter-update event. Callers get a boolean success
// indicator to surface a retry affordance.
//
// # Concurrency
//
// All state lives behind the Manager's mutex and every handler runs to
// completion, so push events, fetch completions and UI mutations never
// interleave mid-update. Network calls happen outside the lock: a slow
// fetch does not block push event processing. Handlers are applied in the
// order their underlying operations complete, not the order they were
// issued. A fetch completing after a pushed notification may transiently
// drop that notification from the window until the next refresh.
//
// # Usage
//
//	repo, _ := notifications.NewClient(api, cfg.BaseURL)
//	manager, _ := notifications.NewManager(repo,
//	    notifications.WithAlertSink(sink),
//	    notifications.WithConnectionStatus(channel.Connected),
//	)
//
//	go manager.Run(ctx, channel.Events())
//	manager.LoadFirstPage(ctx, 20)
//
//	view := manager.Snapshot()
package notifications
