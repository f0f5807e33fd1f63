package notify

import (
	"context"

	"github.com/scorewatch/scorewatch/pkg/logger"
)

// LogNotifier writes notifications to the service log instead of
// delivering them. Used for local runs without a delivery gateway.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the payload and always succeeds.
func (n *LogNotifier) Notify(ctx context.Context, recipientID, text string) error {
	n.log.Info(ctx, "notification",
		logger.String("recipient", recipientID),
		logger.String("text", text),
	)
	return nil
}
