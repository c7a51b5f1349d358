// Package alerts defines the user-facing alert sink consumed by the
// notification subsystem.
//
// The Sink interface decouples the resilient client and the notification
// state manager from whatever surface renders toasts and error banners.
// Sinks are injected at construction time; there is no process-wide hook.
//
// Two implementations ship with the package: NoopSink for tests and
// SlogSink which routes alerts to a structured logger.
package alerts
