// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FeedURL is the fixed live-match feed endpoint.
	FeedURL string `koanf:"feed_url"`

	// FetchTimeoutSec bounds one feed request.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// FetchRetries is how often a failed fetch is retried within a tick.
	FetchRetries int `koanf:"fetch_retries"`

	// ActivePollSec is the interval while matches are monitored.
	ActivePollSec int `koanf:"active_poll_sec"`

	// RetryPollSec is the short wait after a failed fetch.
	RetryPollSec int `koanf:"retry_poll_sec"`

	// IdleAlignMin aligns idle polling to the next N-minute mark.
	IdleAlignMin int `koanf:"idle_align_min"`

	// DataDir holds the snapshot and registry documents.
	DataDir string `koanf:"data_dir"`

	// DispatchWorkers sets the number of delivery workers.
	DispatchWorkers int `koanf:"dispatch_workers"`

	// DispatchQueueSize bounds the outbound notification queue.
	DispatchQueueSize int `koanf:"dispatch_queue_size"`

	// WebhookURL is the delivery gateway endpoint. Empty means log-only
	// delivery.
	WebhookURL string `koanf:"webhook_url"`

	// WebhookToken authenticates against the delivery gateway.
	WebhookToken string `koanf:"webhook_token"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		FeedURL:           "https://feed.example/live.json",
		FetchTimeoutSec:   15,
		FetchRetries:      2,
		ActivePollSec:     30,
		RetryPollSec:      20,
		IdleAlignMin:      10,
		DataDir:           "data",
		DispatchWorkers:   4,
		DispatchQueueSize: 1024,
	}
}
