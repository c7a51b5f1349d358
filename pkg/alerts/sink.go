package alerts

import (
	"context"
	"log/slog"

	"github.com/deskhive/notifykit/pkg/logger"
)

// Toast is a transient user-facing message with an optional call to action.
type Toast struct {
	Title       string
	Message     string
	ActionURL   string
	ActionLabel string
}

// Sink receives user-facing alerts. Implementations are fire-and-forget:
// callers never consume a return value, so a sink must not block.
type Sink interface {
	// ShowToast surfaces an informational toast.
	ShowToast(ctx context.Context, toast Toast)

	// ShowError surfaces an error banner with the given message.
	ShowError(ctx context.Context, message string)
}

// NoopSink discards all alerts. Useful for tests or headless runs.
type NoopSink struct{}

func (NoopSink) ShowToast(ctx context.Context, toast Toast) {}

func (NoopSink) ShowError(ctx context.Context, message string) {}

// SlogSink writes alerts to a structured logger. It is the default sink for
// environments without a UI attached.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink backed by the given logger.
// A nil logger falls back to slog.Default().
func NewSlogSink(l *slog.Logger) *SlogSink {
	if l == nil {
		l = slog.Default()
	}
	return &SlogSink{logger: l}
}

func (s *SlogSink) ShowToast(ctx context.Context, toast Toast) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "toast",
		slog.String("title", toast.Title),
		slog.String("message", toast.Message),
		logger.URL(toast.ActionURL),
	)
}

func (s *SlogSink) ShowError(ctx context.Context, message string) {
	s.logger.LogAttrs(ctx, slog.LevelWarn, "user-facing error",
		slog.String("message", message),
	)
}
