package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Default webhook configuration constants.
const (
	defaultWebhookTimeout = 10 * time.Second
)

// WebhookOption applies a configuration option to the WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithWebhookTimeout sets the per-delivery timeout.
func WithWebhookTimeout(d time.Duration) WebhookOption {
	return func(n *WebhookNotifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithWebhookToken sets the bearer token sent with every delivery.
func WithWebhookToken(token string) WebhookOption {
	return func(n *WebhookNotifier) {
		n.token = token
	}
}

// WebhookNotifier posts notifications to an HTTP endpoint, one request
// per recipient. The delivery gateway behind the endpoint owns any
// retry policy.
type WebhookNotifier struct {
	url     string
	token   string
	timeout time.Duration
	client  *resty.Client
}

// webhookPayload is the wire shape of one delivery.
type webhookPayload struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

// NewWebhookNotifier creates a notifier posting to the given URL.
func NewWebhookNotifier(url string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		url:     url,
		timeout: defaultWebhookTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}

	n.client = resty.New().SetTimeout(n.timeout)
	if n.token != "" {
		n.client.SetAuthToken(n.token)
	}
	return n
}

// Notify posts one payload. Non-2xx responses count as failures.
func (n *WebhookNotifier) Notify(ctx context.Context, recipientID, text string) error {
	res, err := n.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{RecipientID: recipientID, Text: text}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("%w: recipient %s: %w", ErrDeliver, recipientID, err)
	}
	if res.IsError() {
		return fmt.Errorf("%w: recipient %s: status %d", ErrDeliver, recipientID, res.StatusCode())
	}
	return nil
}
