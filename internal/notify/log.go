package notify

import (
	"context"
	"log/slog"
)

// LogNotifier пишет уведомления в структурированный лог.
// Используется, когда очередь уведомлений не настроена.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier создает лог-реализацию Notifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify пишет уведомление в лог.
func (n *LogNotifier) Notify(_ context.Context, note Notification) {
	n.log.Info("user notification",
		slog.String("title", note.Title),
		slog.String("description", note.Description),
		slog.String("variant", note.Variant),
	)
}
