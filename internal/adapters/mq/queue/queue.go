// Package queue defines the contract for buffering outbound notifications.
//
// One message carries the full batched text for one recipient for one
// tick; the dispatch workers drain the queue through the Notifier.
package queue

import (
	"context"
	"sync"

	"github.com/scorewatch/scorewatch/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Message is one outbound notification awaiting delivery.
type Message struct {
	ID          string // delivery id, for log correlation
	RecipientID string
	Text        string
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a message to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, m Message) bool

	// Dequeue returns a channel that receives messages as they become
	// available. The channel is closed once the queue is closed and
	// fully drained.
	Dequeue(ctx context.Context) <-chan Message

	// Len returns the current number of buffered messages.
	Len(ctx context.Context) int

	// Close stops accepting new messages. Buffered messages remain
	// consumable until drained.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	messages chan Message
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}

	q.messages = make(chan Message, q.capacity)
	metrics.UpdateDispatchQueue(0, q.capacity)
	return q
}

// Enqueue adds a message to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, m Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordDispatchEnqueueError()
		return false
	}

	select {
	case q.messages <- m:
		metrics.UpdateDispatchQueue(len(q.messages), q.capacity)
		return true
	case <-ctx.Done():
		metrics.RecordDispatchEnqueueError()
		return false
	default:
		metrics.RecordDispatchEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that receives messages as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Message {
	out := make(chan Message)
	go func() {
		defer close(out)
		for m := range q.messages {
			select {
			case out <- m:
				metrics.UpdateDispatchQueue(len(q.messages), q.capacity)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of buffered messages.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.messages)
}

// Close stops accepting new messages and lets consumers drain the rest.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.messages)
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
