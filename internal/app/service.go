// Package service provides the core monitoring service that drives the
// poll loop and implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/scorewatch/scorewatch/internal/adapters/mq/queue"
	"github.com/scorewatch/scorewatch/internal/adapters/mq/worker"
	"github.com/scorewatch/scorewatch/internal/adapters/notify"
	"github.com/scorewatch/scorewatch/internal/adapters/registry"
	"github.com/scorewatch/scorewatch/internal/adapters/source"
	"github.com/scorewatch/scorewatch/internal/adapters/store"
	"github.com/scorewatch/scorewatch/internal/domain/model"
	"github.com/scorewatch/scorewatch/pkg/logger"
)

// Default service configuration constants.
const (
	defaultActiveInterval = 30 * time.Second
	defaultRetryInterval  = 20 * time.Second
	defaultIdleAlign      = 10 * time.Minute
	defaultDataDir        = "data"
	defaultWorkerCount    = 4
	defaultQueueSize      = 1024

	snapshotFile = "snapshot.json"
	registryFile = "registry.json"
)

// Service owns the fetch -> promote -> diff -> swap poll loop and the outbound
// dispatch pipeline. Subscription commands arrive concurrently from
// request handlers; only the loop itself touches the snapshot store.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry  *registry.Registry
	snapshots *store.SnapshotStore
	fetcher   source.Fetcher
	extractor source.Extractor
	notifier  notify.Notifier
	outbound  queue.Queue
	pool      *worker.Pool

	// Configuration
	feedURL        string
	fetchTimeout   time.Duration
	fetchRetries   int
	activeInterval time.Duration
	retryInterval  time.Duration
	idleAlign      time.Duration
	dataDir        string
	workerCount    int
	queueSize      int
	webhookURL     string
	webhookToken   string

	// State
	started  bool
	stopCh   chan struct{}
	loopDone chan struct{}
	wake     chan struct{} // buffered(1): level-triggered wake signal

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeedURL sets the live-match feed endpoint.
func WithFeedURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.feedURL = url
		}
	}
}

// WithFetchTimeout bounds one feed request.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithFetchRetries sets in-tick fetch retries.
func WithFetchRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.fetchRetries = n
		}
	}
}

// WithActiveInterval sets the polling interval while matches are
// monitored.
func WithActiveInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.activeInterval = d
		}
	}
}

// WithRetryInterval sets the short wait after a failed tick.
func WithRetryInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retryInterval = d
		}
	}
}

// WithIdleAlign sets the coarse boundary idle polling aligns to.
func WithIdleAlign(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.idleAlign = d
		}
	}
}

// WithDataDir sets the directory holding the persisted documents.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithDispatchWorkers sets the number of delivery workers.
func WithDispatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithDispatchQueueSize bounds the outbound notification queue.
func WithDispatchQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithWebhook configures webhook delivery. An empty URL keeps log-only
// delivery.
func WithWebhook(url, token string) Option {
	return func(s *Service) {
		s.webhookURL = url
		s.webhookToken = token
	}
}

// WithRegistry injects a pre-built subscriber registry. The registry
// should carry its own wake hook; Start only attaches one to registries
// it builds itself.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithSnapshotStore injects a pre-built snapshot store.
func WithSnapshotStore(st *store.SnapshotStore) Option {
	return func(s *Service) {
		if st != nil {
			s.snapshots = st
		}
	}
}

// WithFetcher injects a custom feed fetcher.
func WithFetcher(f source.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithExtractor injects a custom document extractor.
func WithExtractor(x source.Extractor) Option {
	return func(s *Service) {
		if x != nil {
			s.extractor = x
		}
	}
}

// WithNotifier injects a custom notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		activeInterval: defaultActiveInterval,
		retryInterval:  defaultRetryInterval,
		idleAlign:      defaultIdleAlign,
		dataDir:        defaultDataDir,
		workerCount:    defaultWorkerCount,
		queueSize:      defaultQueueSize,
		fetchTimeout:   15 * time.Second,
		fetchRetries:   2,
		wake:           make(chan struct{}, 1),
		stopCh:         make(chan struct{}),
		loopDone:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the components and launches the poll loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("monitor")
	}

	if s.registry == nil {
		reg, err := registry.New(
			store.NewDocument(filepath.Join(s.dataDir, registryFile)),
			registry.WithOnSubscribe(s.signalWake),
		)
		if err != nil {
			return fmt.Errorf("open registry: %w", err)
		}
		s.registry = reg
	}

	if s.snapshots == nil {
		s.snapshots = store.NewSnapshotStore(store.NewDocument(filepath.Join(s.dataDir, snapshotFile)))
	}
	if _, err := s.snapshots.Load(); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if s.fetcher == nil {
		s.fetcher = source.NewFeedClient(s.feedURL,
			source.WithTimeout(s.fetchTimeout),
			source.WithRetryCount(s.fetchRetries),
		)
	}
	if s.extractor == nil {
		s.extractor = source.NewJSONExtractor()
	}
	if s.notifier == nil {
		if s.webhookURL != "" {
			s.notifier = notify.NewWebhookNotifier(s.webhookURL, notify.WithWebhookToken(s.webhookToken))
		} else {
			s.notifier = notify.NewLogNotifier(s.logger)
		}
	}

	s.outbound = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.outbound, s.notifier)

	// The loop and the dispatch pool outlive the parent context: a
	// signal-triggered cancellation must not kill the workers before
	// Stop has drained the queue. Stop owns their lifecycle.
	runCtx := context.WithoutCancel(ctx)
	s.pool.Start(runCtx)

	go s.runLoop(runCtx)

	s.started = true
	s.logger.Info(ctx, "monitor service started",
		logger.Int("workers", s.workerCount),
		logger.Duration("activeInterval", s.activeInterval),
		logger.Duration("idleAlign", s.idleAlign),
	)
	return nil
}

// Stop gracefully shuts the service down: the in-flight tick finishes,
// the dispatch queue drains, and state stays persisted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping monitor service...")

	close(s.stopCh)
	<-s.loopDone

	if err := s.pool.Drain(ctx); err != nil {
		s.logger.Error(ctx, "dispatch drain failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "monitor service stopped")
}

// Subscribe registers a recipient for one event in the given section.
// An effective write wakes the poll loop so the new subscriber does not
// wait out the remainder of an idle interval.
func (s *Service) Subscribe(ctx context.Context, eventID int, recipientID string, kind model.Kind, section model.Section) (bool, error) {
	return s.registry.Subscribe(ctx, eventID, recipientID, kind, section)
}

// Unsubscribe removes a recipient's subscription.
func (s *Service) Unsubscribe(ctx context.Context, eventID int, recipientID string, section model.Section) (bool, error) {
	return s.registry.Unsubscribe(ctx, eventID, recipientID, section)
}

// ListLive returns the events of the most recent snapshot.
func (s *Service) ListLive(ctx context.Context) []model.EventSnapshot {
	return s.snapshots.Current()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"activeInterval": s.activeInterval.String(),
		"idleAlign":      s.idleAlign.String(),
	}
	if s.started {
		stats["liveEvents"] = len(s.snapshots.Current())
		stats["outboundQueued"] = s.outbound.Len(context.Background())
	}
	return stats
}

// signalWake raises the level-triggered wake signal. The buffered(1)
// channel retains a signal raised while the loop is not waiting, so
// nothing is lost between wait cycles.
func (s *Service) signalWake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
