// Package worker drains the outbound dispatch queue through the
// Notifier. A delivery failure is logged and counted; it never blocks
// other recipients and is never retried here.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/scorewatch/scorewatch/internal/adapters/mq/queue"
	"github.com/scorewatch/scorewatch/internal/adapters/notify"
	"github.com/scorewatch/scorewatch/pkg/logger"
	"github.com/scorewatch/scorewatch/pkg/metrics"
)

// Default dispatcher configuration constants.
const (
	defaultWorkerCount    = 4
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Queue defines how dispatchers receive outbound messages.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Message
}

// Dispatcher delivers queued messages through the Notifier.
type Dispatcher struct {
	queue    Queue
	notifier notify.Notifier
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewDispatcher creates a dispatch worker with configuration options.
func NewDispatcher(q Queue, n notify.Notifier, opts ...Option) *Dispatcher {
	w := &Dispatcher{
		queue:    q,
		notifier: n,
		name:     "dispatcher",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("dispatcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the delivery loop. It exits once the queue channel closes
// (graceful drain), the shutdown signal fires, or ctx is cancelled.
func (w *Dispatcher) Run(ctx context.Context) {
	defer close(w.done)

	messages := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			w.deliver(ctx, m)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Dispatcher) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// deliver attempts one delivery. Failures degrade to a log line plus a
// metric; the tick that produced the message has already moved on.
func (w *Dispatcher) deliver(ctx context.Context, m queue.Message) {
	if err := w.notifier.Notify(ctx, m.RecipientID, m.Text); err != nil {
		metrics.RecordNotificationFailure()
		w.logger.Error(ctx, "delivery failed",
			logger.String("deliveryID", m.ID),
			logger.String("recipient", m.RecipientID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordNotificationSent()
	w.logger.Debug(ctx, "delivered",
		logger.String("deliveryID", m.ID),
		logger.String("recipient", m.RecipientID),
	)
}

// Pool manages a fixed set of dispatch workers.
type Pool struct {
	workers []*Dispatcher
	queue   Queue

	logger logger.Logger
}

// NewPool creates a dispatch pool.
func NewPool(workerCount int, q Queue, n notify.Notifier) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*Dispatcher, workerCount),
		queue:   q,
		logger:  logger.Get().Named("dispatch-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewDispatcher(q, n, WithName("dispatcher-"+strconv.Itoa(i)))
	}
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Drain closes the queue and waits for the workers to finish delivering
// what is already buffered.
func (p *Pool) Drain(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	drainCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-drainCtx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}

// Stop stops all workers without waiting for the queue to drain.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}
