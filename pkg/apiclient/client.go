package apiclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/deskhive/notifykit/pkg/alerts"
	"github.com/deskhive/notifykit/pkg/auditlog"
	"github.com/deskhive/notifykit/pkg/logger"
)

// noConnectionMessage is the generic notice surfaced when no response was
// obtained at all.
const noConnectionMessage = "No connection. Check your network and try again."

// Transport sends an HTTP request and returns the response. The injected
// implementation is expected to attach credentials and refresh them
// transparently; a 401 reaching this client is treated as already handled
// upstream and is never surfaced to the user.
//
// *http.Client satisfies Transport.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the single choke point for outbound calls to the backend.
// It classifies failures, records them in the audit log, surfaces
// user-facing alerts, and tags every error with its retry eligibility.
type Client struct {
	transport Transport
	audit     *auditlog.Log
	alerts    alerts.Sink
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAuditLog sets the diagnostic log failures are appended to.
func WithAuditLog(log *auditlog.Log) Option {
	return func(c *Client) {
		if log != nil {
			c.audit = log
		}
	}
}

// WithAlertSink sets the sink user-facing failure notices go to.
func WithAlertSink(sink alerts.Sink) Option {
	return func(c *Client) {
		if sink != nil {
			c.alerts = sink
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a resilient client around the given authenticated transport.
// A nil transport falls back to http.DefaultClient.
func New(transport Transport, opts ...Option) *Client {
	if transport == nil {
		transport = http.DefaultClient
	}

	c := &Client{
		transport: transport,
		audit:     auditlog.New(auditlog.DefaultCapacity),
		alerts:    alerts.NoopSink{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuditLog returns the diagnostic log failures are recorded in.
func (c *Client) AuditLog() *auditlog.Log {
	return c.audit
}

// callOptions carries per-call behavior overrides.
type callOptions struct {
	userMessage string
	silent      bool
}

// CallOption configures a single Execute call.
type CallOption func(*callOptions)

// WithUserMessage overrides the generic cause shown to the user when the
// call fails. The override applies to both network and HTTP failures.
func WithUserMessage(msg string) CallOption {
	return func(o *callOptions) {
		if msg != "" {
			o.userMessage = msg
		}
	}
}

// WithSilent suppresses the user-facing alert for this call entirely.
// The failure is still audited and returned to the caller.
func WithSilent() CallOption {
	return func(o *callOptions) {
		o.silent = true
	}
}

// Execute sends the request through the transport and normalizes the
// outcome. Responses with a 2xx status are returned as-is; the caller owns
// the body. Every other outcome is appended to the audit log, optionally
// surfaced to the alert sink, and returned as a structured *Error carrying
// the retry-eligibility classification.
func (c *Client) Execute(ctx context.Context, req *http.Request, opts ...CallOption) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	options := &callOptions{}
	for _, opt := range opts {
		opt(options)
	}

	resp, err := c.transport.Do(req.WithContext(ctx))
	if err != nil {
		return nil, c.failNetwork(ctx, req, err, options)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	// Drain so the connection can be reused, then classify.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()

	return nil, c.failStatus(ctx, req, resp.StatusCode, options)
}

// failNetwork handles the no-response case: always retry-eligible.
func (c *Client) failNetwork(ctx context.Context, req *http.Request, cause error, options *callOptions) error {
	c.audit.Append(ctx, auditlog.Entry{
		Message: cause.Error(),
		URL:     req.URL.String(),
	})

	c.logger.LogAttrs(ctx, slog.LevelWarn, "request failed without a response",
		logger.Component("apiclient"),
		logger.URL(req.URL.String()),
		logger.Error(cause),
	)

	if !options.silent {
		msg := options.userMessage
		if msg == "" {
			msg = noConnectionMessage
		}
		c.alerts.ShowError(ctx, msg)
	}

	return &Error{
		Message:   noConnectionMessage,
		Category:  CategoryNetwork,
		Retryable: true,
		cause:     fmt.Errorf("%w: %w", ErrNoConnection, cause),
	}
}

// failStatus handles a received non-success response.
func (c *Client) failStatus(ctx context.Context, req *http.Request, statusCode int, options *callOptions) error {
	cls := classify(statusCode)

	c.audit.Append(ctx, auditlog.Entry{
		Message:    cls.cause,
		StatusCode: statusCode,
		URL:        req.URL.String(),
	})

	c.logger.LogAttrs(ctx, slog.LevelWarn, "request rejected",
		logger.Component("apiclient"),
		logger.URL(req.URL.String()),
		logger.StatusCode(statusCode),
		slog.String("cause", cls.cause),
	)

	// 401 is handled by the token-refresh layer upstream and must never
	// reach the user as a toast.
	if !options.silent && statusCode != http.StatusUnauthorized {
		msg := options.userMessage
		if msg == "" {
			msg = cls.cause
		}
		c.alerts.ShowError(ctx, msg)
	}

	return &Error{
		Message:    cls.cause,
		StatusCode: statusCode,
		Category:   cls.category,
		Retryable:  cls.retryable,
		cause:      ErrRequestFailed,
	}
}

var _ Transport = (*http.Client)(nil)
