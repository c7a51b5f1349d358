package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/deskhive/notifykit/pkg/apiclient"
	"github.com/deskhive/notifykit/pkg/logger"
	"github.com/deskhive/notifykit/pkg/notifications"
)

// frame is the wire envelope for push events.
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// WebsocketChannel is a Channel backed by a websocket connection.
// Read failures trigger automatic reconnection with backoff; events received
// between reconnects are forwarded in arrival order on a single queue.
type WebsocketChannel struct {
	url     string
	header  http.Header
	dialer  *websocket.Dialer
	backoff apiclient.BackoffStrategy
	logger  *slog.Logger
	buffer  int

	events    chan notifications.Event
	connected atomic.Bool
	cancel    context.CancelFunc
	conn      *websocket.Conn
	closeOnce sync.Once
	mu        sync.Mutex
}

// WebsocketOption configures a WebsocketChannel.
type WebsocketOption func(*WebsocketChannel)

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) WebsocketOption {
	return func(c *WebsocketChannel) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithRequestHeader sets headers sent on every dial, typically credentials.
func WithRequestHeader(h http.Header) WebsocketOption {
	return func(c *WebsocketChannel) {
		if h != nil {
			c.header = h
		}
	}
}

// WithReconnectBackoff replaces the reconnect backoff strategy.
func WithReconnectBackoff(strategy apiclient.BackoffStrategy) WebsocketOption {
	return func(c *WebsocketChannel) {
		if strategy != nil {
			c.backoff = strategy
		}
	}
}

// WithEventBuffer sets the event queue buffer size. Default is 64.
func WithEventBuffer(n int) WebsocketOption {
	return func(c *WebsocketChannel) {
		if n > 0 {
			c.buffer = n
		}
	}
}

// WithChannelLogger sets the structured logger.
func WithChannelLogger(log *slog.Logger) WebsocketOption {
	return func(c *WebsocketChannel) {
		if log != nil {
			c.logger = log
		}
	}
}

// Dial connects to a push endpoint and starts forwarding events. The initial
// dial failing is returned to the caller; failures after that trigger
// automatic reconnection until ctx is cancelled or Close is called.
func Dial(ctx context.Context, rawURL string, opts ...WebsocketOption) (*WebsocketChannel, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("%w: scheme must be ws or wss", ErrInvalidURL)
	}

	c := &WebsocketChannel{
		url:     rawURL,
		dialer:  websocket.DefaultDialer,
		backoff: apiclient.DefaultReconnectBackoff(),
		logger:  slog.Default(),
		buffer:  64,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.events = make(chan notifications.Event, c.buffer)

	conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDialFailed, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.setConn(conn)

	go c.run(runCtx, conn)

	return c, nil
}

func (c *WebsocketChannel) Events() <-chan notifications.Event {
	return c.events
}

func (c *WebsocketChannel) Connected() bool {
	return c.connected.Load()
}

// Close tears the connection down and closes the event queue once the read
// loop has drained.
func (c *WebsocketChannel) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
	return nil
}

func (c *WebsocketChannel) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// run owns the connection lifecycle: read until failure, then reconnect
// with backoff until the context ends.
func (c *WebsocketChannel) run(ctx context.Context, conn *websocket.Conn) {
	defer close(c.events)
	defer c.connected.Store(false)

	for {
		c.connected.Store(true)
		c.readLoop(ctx, conn)
		c.connected.Store(false)
		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		conn = c.reconnect(ctx)
		if conn == nil {
			return
		}
		c.setConn(conn)
	}
}

// readLoop forwards frames until the connection errors or the context ends.
func (c *WebsocketChannel) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.logger.LogAttrs(ctx, slog.LevelWarn, "push connection lost",
					logger.Component("push"),
					logger.Error(err),
				)
			}
			return
		}

		ev, ok := c.decode(ctx, data)
		if !ok {
			continue
		}

		// Blocking send keeps arrival order intact.
		select {
		case c.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// decode maps a wire frame onto a typed event. Malformed or unknown frames
// are skipped: the push channel must never take the subsystem down.
func (c *WebsocketChannel) decode(ctx context.Context, data []byte) (notifications.Event, bool) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "skipping malformed push frame",
			logger.Component("push"),
			logger.Error(err),
		)
		return notifications.Event{}, false
	}

	switch f.Type {
	case string(notifications.EventNewNotification):
		var n notifications.Notification
		if err := json.Unmarshal(f.Payload, &n); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "skipping malformed notification payload",
				logger.Component("push"),
				logger.Error(err),
			)
			return notifications.Event{}, false
		}
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		return notifications.NewNotificationEvent(n), true

	case string(notifications.EventCounterUpdate):
		var count int
		if err := json.Unmarshal(f.Payload, &count); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "skipping malformed counter payload",
				logger.Component("push"),
				logger.Error(err),
			)
			return notifications.Event{}, false
		}
		return notifications.CounterUpdateEvent(count), true

	default:
		c.logger.LogAttrs(ctx, slog.LevelDebug, "ignoring unknown push frame",
			logger.Component("push"),
			slog.String("frame_type", f.Type),
		)
		return notifications.Event{}, false
	}
}

// reconnect dials until it succeeds or the context ends.
func (c *WebsocketChannel) reconnect(ctx context.Context) *websocket.Conn {
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.backoff.NextInterval(attempt)):
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
		if err == nil {
			c.logger.LogAttrs(ctx, slog.LevelInfo, "push connection restored",
				logger.Component("push"),
				logger.Attempt(attempt),
			)
			return conn
		}

		c.logger.LogAttrs(ctx, slog.LevelWarn, "push reconnect failed",
			logger.Component("push"),
			logger.Attempt(attempt),
			logger.Error(err),
		)
	}
}

var _ Channel = (*WebsocketChannel)(nil)
