// Package notification delivers customer notifications off the request path.
//
// The Dispatcher is what the shipment workflow talks to. It accepts a notification, puts it
// on a bounded queue and returns; worker goroutines hand it to the configured sink. A failed
// delivery is parked on the dispatcher's failure buffer and only comes back when
// RetryFailed is called, normally by a cron job.
package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/metrics"
)

const (
	DefaultWorkers         = 2
	DefaultQueueSize       = 256
	DefaultMaxAttempts     = 5
	DefaultDeliveryTimeout = 10 * time.Second
)

var (
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
	ErrQueueFull        = errors.New("notification queue is full")
)

type eventKind string

const (
	eventCreated       eventKind = "created"
	eventStatusChanged eventKind = "status_changed"
)

// Drop reasons reported to metrics.
const (
	reasonQueueFull  = "queue_full"
	reasonExhausted  = "exhausted"
	reasonBufferFull = "retry_buffer_full"
	reasonShutdown   = "closed"
)

type delivery struct {
	ctx      context.Context
	kind     eventKind
	shipment *shipment.Shipment
	entry    shipment.StatusEntry
	attempts int
}

type DispatcherConfig struct {
	Workers         int
	QueueSize       int
	MaxAttempts     int
	DeliveryTimeout time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = DefaultDeliveryTimeout
	}
	return c
}

// Dispatcher implements ports.NotificationPort asynchronously on top of a synchronous sink.
type Dispatcher struct {
	sink   ports.NotificationPort
	cfg    DispatcherConfig
	logger *slog.Logger

	mu       sync.RWMutex
	closed   bool
	queue    chan delivery
	failures chan delivery
	wg       sync.WaitGroup
}

func NewDispatcher(sink ports.NotificationPort, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sink:     sink,
		cfg:      cfg,
		logger:   logger.With("component", "notification_dispatcher"),
		queue:    make(chan delivery, cfg.QueueSize),
		failures: make(chan delivery, cfg.QueueSize),
	}
}

// Start launches the workers. They stop once Close has drained the queue.
func (d *Dispatcher) Start() {
	for range d.cfg.Workers {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("notification workers started", "workers", d.cfg.Workers)
}

func (d *Dispatcher) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	return d.enqueue(delivery{ctx: context.WithoutCancel(ctx), kind: eventCreated, shipment: s})
}

func (d *Dispatcher) NotifyStatusChanged(ctx context.Context, s *shipment.Shipment, entry shipment.StatusEntry) error {
	return d.enqueue(delivery{ctx: context.WithoutCancel(ctx), kind: eventStatusChanged, shipment: s, entry: entry})
}

// RetryFailed moves the deliveries parked so far back onto the queue and returns how many
// were re-enqueued.
func (d *Dispatcher) RetryFailed(ctx context.Context) int {
	retried := 0
	for pending := len(d.failures); pending > 0; pending-- {
		if ctx.Err() != nil {
			break
		}

		var item delivery
		select {
		case item = <-d.failures:
		default:
			return retried
		}

		if err := d.offer(item); err != nil {
			if errors.Is(err, ErrQueueFull) {
				// Leave it parked for the next run.
				d.park(ctx, item, err)
			} else {
				metrics.NotificationsDroppedTotal.WithLabelValues(string(item.kind), reasonShutdown).Inc()
			}
			break
		}
		retried++
	}
	return retried
}

// Pending returns the number of deliveries waiting for a retry.
func (d *Dispatcher) Pending() int {
	return len(d.failures)
}

// Close stops accepting notifications and waits for the queued ones to be attempted, or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if n := len(d.failures); n > 0 {
		d.logger.Warn("undelivered notifications discarded on shutdown", "count", n)
		for range n {
			item := <-d.failures
			metrics.NotificationsDroppedTotal.WithLabelValues(string(item.kind), reasonShutdown).Inc()
		}
	}
	return nil
}

func (d *Dispatcher) enqueue(item delivery) error {
	err := d.offer(item)
	if errors.Is(err, ErrQueueFull) {
		metrics.NotificationsDroppedTotal.WithLabelValues(string(item.kind), reasonQueueFull).Inc()
	}
	return err
}

// offer puts item on the queue without blocking.
func (d *Dispatcher) offer(item delivery) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- item:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for item := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		d.deliver(item)
	}
}

func (d *Dispatcher) deliver(item delivery) {
	ctx, cancel := context.WithTimeout(item.ctx, d.cfg.DeliveryTimeout)
	defer cancel()

	var err error
	switch item.kind {
	case eventCreated:
		err = d.sink.NotifyCreated(ctx, item.shipment)
	case eventStatusChanged:
		err = d.sink.NotifyStatusChanged(ctx, item.shipment, item.entry)
	}

	code := item.shipment.TrackingCode().String()
	if err == nil {
		metrics.NotificationsDeliveredTotal.WithLabelValues(string(item.kind)).Inc()
		d.logger.DebugContext(ctx, "notification delivered", "tracking_code", code, "event", string(item.kind))
		return
	}

	item.attempts++
	metrics.NotificationsFailedTotal.WithLabelValues(string(item.kind)).Inc()

	if item.attempts >= d.cfg.MaxAttempts {
		metrics.NotificationsDroppedTotal.WithLabelValues(string(item.kind), reasonExhausted).Inc()
		d.logger.ErrorContext(ctx, "notification dropped after max attempts",
			"tracking_code", code,
			"event", string(item.kind),
			"attempt", item.attempts,
			"error", err)
		return
	}

	d.park(ctx, item, err)
}

// park keeps a failed delivery for the next RetryFailed.
func (d *Dispatcher) park(ctx context.Context, item delivery, cause error) {
	code := item.shipment.TrackingCode().String()

	select {
	case d.failures <- item:
		d.logger.WarnContext(ctx, "notification failed, parked for retry",
			"tracking_code", code,
			"event", string(item.kind),
			"attempt", item.attempts,
			"error", cause)
	default:
		metrics.NotificationsDroppedTotal.WithLabelValues(string(item.kind), reasonBufferFull).Inc()
		d.logger.ErrorContext(ctx, "notification dropped, retry buffer full",
			"tracking_code", code,
			"event", string(item.kind),
			"attempt", item.attempts,
			"error", cause)
	}
}
