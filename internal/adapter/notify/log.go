package notify

import (
	"context"

	"go.uber.org/zap"

	"rental-intake/internal/domain/application"
)

// LogNotifier writes notices to the log when no mail sender is configured.
type LogNotifier struct{ log *zap.Logger }

var _ application.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *zap.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) NotifyStatus(_ context.Context, s application.StatusNotice) error {
	n.log.Info("tenant status notice",
		zap.String("application_id", s.ApplicationID),
		zap.String("to", s.TenantEmail),
		zap.String("status", string(s.Status)),
		zap.String("message", s.Message),
		zap.String("status_url", s.StatusURL))
	return nil
}
