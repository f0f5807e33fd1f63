// Package notify defines the outbound delivery boundary. The engine
// only calls Notify; retry and backoff policy belong to the
// implementation behind it.
package notify

import "context"

// Notifier attempts delivery of one text payload to one recipient.
type Notifier interface {
	Notify(ctx context.Context, recipientID, text string) error
}
