// Package notify delivers transient user-facing messages. Delivery is
// fire-and-forget: a failed notification never affects cart state.
package notify

import (
	"context"

	"github.com/foodfetch/storefront-backend/pkg/logger"
)

// Notifier is the toast surface invoked by cart mutations.
type Notifier interface {
	Success(ctx context.Context, message string)
	Info(ctx context.Context, message string)
}

// LogNotifier renders notifications as structured log lines.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Success(ctx context.Context, message string) {
	n.emit(ctx, "success", message)
}

func (n *LogNotifier) Info(ctx context.Context, message string) {
	n.emit(ctx, "info", message)
}

func (n *LogNotifier) emit(ctx context.Context, level, message string) {
	if n == nil || n.logg == nil {
		return
	}
	ctx = n.logg.WithFields(ctx, map[string]any{
		"notification_level": level,
		"notification":       message,
	})
	n.logg.Info(ctx, "notification")
}

// Fanout delivers each notification to every configured notifier.
type Fanout []Notifier

func (f Fanout) Success(ctx context.Context, message string) {
	for _, n := range f {
		if n != nil {
			n.Success(ctx, message)
		}
	}
}

func (f Fanout) Info(ctx context.Context, message string) {
	for _, n := range f {
		if n != nil {
			n.Info(ctx, message)
		}
	}
}
