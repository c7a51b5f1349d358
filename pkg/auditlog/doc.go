// Package auditlog provides a bounded diagnostic log of failed outbound
// calls.
//
// The core type is Log, a fixed-capacity ring buffer: appends are cheap,
// memory is bounded, and the oldest entries are evicted first. The buffer
// exists purely for observability; nothing in the notification subsystem
// depends on it for correctness, and losing entries is acceptable.
//
// A Log can mirror appends to a persistent Store (best effort, failures
// swallowed). Two stores ship with the package: MemoryStore for tests and
// RedisStore, which keeps a capped list per key via LPUSH + LTRIM.
//
// # Usage
//
//	log := auditlog.New(100,
//	    auditlog.WithStore(store, "api-failures"),
//	)
//	log.Append(ctx, auditlog.Entry{
//	    Message:    "service unavailable",
//	    StatusCode: 503,
//	    URL:        "https://api.example.com/notifications",
//	})
package auditlog
