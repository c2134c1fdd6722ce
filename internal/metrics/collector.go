package metrics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type EventType string

const (
	EventRequestForwarded  EventType = "request_forwarded"
	EventRequestRejected   EventType = "request_rejected"
	EventResponseCompleted EventType = "response_completed"
	EventHealthChanged     EventType = "health_changed"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Endpoint   string
	Duration   time.Duration
	StatusCode int
	Healthy    bool
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
	dropped atomic.Int64
}

// NewCollector creates a collector whose snapshots always list endpoints.
func NewCollector(bufferSize int, logger *slog.Logger, endpoints ...string) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(endpoints...),
		logger:  logger,
	}
}

// Emit queues event without blocking the caller.
func (c *Collector) Emit(event MetricEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
		c.dropped.Add(1)
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventRequestForwarded:
		c.metrics.IncrementRequests(event.Endpoint)
	case EventRequestRejected:
		c.metrics.IncrementRejections(event.Endpoint)
	case EventResponseCompleted:
		c.metrics.RecordResponse(event.Endpoint, event.Duration, event.StatusCode)
	case EventHealthChanged:
		c.metrics.UpdateHealthStatus(event.Endpoint, event.Healthy)
	default:
		c.logger.Debug("Ignoring unknown metric event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	snap := c.metrics.Snapshot()
	snap.DroppedEvents = c.dropped.Load()
	return snap
}
