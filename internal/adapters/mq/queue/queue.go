// Package queue defines the contract for enqueuing and consuming
// registrations.
//
// Implementations may use channels or more advanced structures. The
// default is an in-memory bounded queue.
package queue

import (
	"context"
	"sync"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/metrics"
)

// defaultCapacity bounds the in-memory queue unless overridden by options.
const defaultCapacity = 10_000

// Registration is the payload type flowing through the queue.
type Registration = model.Registration

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a registration to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, r Registration) bool

	// Dequeue returns a channel that receives registrations as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Registration

	// Len returns the current number of queued registrations.
	Len(ctx context.Context) int

	// Close shuts down the queue. After closing, no new registrations can
	// be enqueued and the dequeue channel drains then closes.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	registrations chan Registration
	capacity      int
	mu            sync.RWMutex
	closed        bool
}

// NewInMemoryQueue creates an in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.registrations = make(chan Registration, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a registration to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Registration) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.registrations <- r:
		metrics.RecordQueueEnqueue()
		q.publishGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		// queue is full
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel that receives registrations as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Registration {
	out := make(chan Registration)
	go func() {
		defer close(out)
		for r := range q.registrations {
			select {
			case out <- r:
				metrics.RecordQueueDequeue()
				q.publishGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued registrations.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.registrations)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.registrations)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishGauges() {
	size := len(q.registrations)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
