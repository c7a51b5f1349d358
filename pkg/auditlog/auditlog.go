package auditlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deskhive/notifykit/pkg/logger"
)

// DefaultCapacity bounds the in-memory buffer when no capacity is given.
const DefaultCapacity = 100

// Entry is a single diagnostic record of a failed outbound call.
type Entry struct {
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"` // zero when no response was obtained
	URL        string    `json:"url,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Log is a fixed-capacity ring buffer of failure entries. When full, the
// oldest entry is evicted first. Appends are optionally mirrored to a
// persistent Store on a best-effort basis: persistence failures are swallowed
// because the log is observability, not correctness.
//
// All methods are safe for concurrent use.
type Log struct {
	entries []Entry
	head    int // index of the oldest entry
	size    int

	store  Store
	key    string
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures a Log.
type Option func(*Log)

// WithStore mirrors appended entries to a persistent keyed store under the
// given key. Persistence is best-effort.
func WithStore(store Store, key string) Option {
	return func(l *Log) {
		if store != nil && key != "" {
			l.store = store
			l.key = key
		}
	}
}

// WithLogger sets the logger used for best-effort persistence diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Log) {
		if log != nil {
			l.logger = log
		}
	}
}

// New creates a ring-buffer audit log with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int, opts ...Option) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	l := &Log{
		entries: make([]Entry, capacity),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Append records an entry, evicting the oldest one when the buffer is full.
// A zero timestamp is stamped with the current time.
func (l *Log) Append(ctx context.Context, e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	l.mu.Lock()
	if l.size < len(l.entries) {
		l.entries[(l.head+l.size)%len(l.entries)] = e
		l.size++
	} else {
		l.entries[l.head] = e
		l.head = (l.head + 1) % len(l.entries)
	}
	store, key := l.store, l.key
	l.mu.Unlock()

	if store != nil {
		if err := store.Append(ctx, key, e); err != nil {
			l.logger.LogAttrs(ctx, slog.LevelDebug, "audit entry not persisted",
				logger.Component("auditlog"),
				logger.Error(err),
			)
		}
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, l.size)
	for i := range l.size {
		out[i] = l.entries[(l.head+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of buffered entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Capacity returns the fixed buffer capacity.
func (l *Log) Capacity() int {
	return len(l.entries)
}
