// Package notifier delivers outbound email asynchronously.
//
// Callers enqueue a Message and return immediately; a single worker goroutine
// drains the queue and hands each message to a Sender. Delivery failures are
// logged and counted, never returned to the caller.
package notifier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"brightloop_backend/internal/platform/logger"
)

const defaultSendTimeout = 30 * time.Second

// Message is a single email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender performs the actual delivery.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Stats is a snapshot of delivery counters.
type Stats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Dispatcher is a bounded asynchronous queue in front of a Sender.
type Dispatcher struct {
	sender      Sender
	queue       chan Message
	sendTimeout time.Duration
	log         *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewDispatcher starts a worker that delivers queued messages through sender.
func NewDispatcher(sender Sender, size int) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	d := &Dispatcher{
		sender:      sender,
		queue:       make(chan Message, size),
		sendTimeout: defaultSendTimeout,
		log:         logger.FromContext(context.Background()).With(zap.String("component", "notifier")),
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules msg for delivery. It never blocks; it returns false when
// the queue is full or the dispatcher is closed.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		d.dropped.Add(1)
		d.log.Warn("notification queue full, message dropped", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return false
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()
		if err != nil {
			d.failed.Add(1)
			d.log.Error("notification delivery failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			continue
		}
		d.sent.Add(1)
	}
}

// Close stops accepting messages and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the delivery counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Sent:    d.sent.Load(),
		Failed:  d.failed.Load(),
		Dropped: d.dropped.Load(),
	}
}
