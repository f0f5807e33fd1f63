package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/scorewatch/scorewatch/pkg/metrics"
)

// Default feed client configuration constants.
const (
	defaultFetchTimeout = 15 * time.Second
	defaultRetryCount   = 2
)

// FeedOption applies a configuration option to the FeedClient.
type FeedOption func(*FeedClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FeedOption {
	return func(c *FeedClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryCount sets how many times a failed fetch is retried before
// the tick is given up.
func WithRetryCount(n int) FeedOption {
	return func(c *FeedClient) {
		if n >= 0 {
			c.retryCount = n
		}
	}
}

// FeedClient fetches the live-match document from a fixed endpoint.
type FeedClient struct {
	url        string
	timeout    time.Duration
	retryCount int
	client     *resty.Client
}

// NewFeedClient creates a fetcher for the given feed URL.
func NewFeedClient(url string, opts ...FeedOption) *FeedClient {
	c := &FeedClient{
		url:        url,
		timeout:    defaultFetchTimeout,
		retryCount: defaultRetryCount,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = resty.New().
		SetTimeout(c.timeout).
		SetRetryCount(c.retryCount)
	return c
}

// Fetch performs one GET against the feed endpoint and returns the raw
// body. Non-2xx responses count as fetch failures.
func (c *FeedClient) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	res, err := c.client.R().
		SetContext(ctx).
		Get(c.url)
	metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, res.StatusCode())
	}
	return res.Body(), nil
}
