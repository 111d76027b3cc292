package audit

import (
	"context"
	"sync"

	"github.com/routiq/orggate/pkg/observability"
)

// Recorder accepts audit events from request handlers and persists them in
// the background. Record never blocks: when the queue is full the event is
// dropped and counted instead of stalling the request.
type Recorder struct {
	sink    Sink
	logger  *observability.Logger
	metrics *observability.Metrics

	queue chan *Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewRecorder creates a recorder draining into sink with the given queue size
func NewRecorder(sink Sink, logger *observability.Logger, metrics *observability.Metrics, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 1024
	}
	r := &Recorder{
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		queue:   make(chan *Event, queueSize),
		done:    make(chan struct{}),
	}
	go r.drain()
	return r
}

// Record enqueues an event for persistence. It returns immediately; a full
// queue drops the event.
func (r *Recorder) Record(event Event) {
	event.normalize()

	select {
	case r.queue <- &event:
		r.metrics.AuditEventsTotal.WithLabelValues(string(event.Outcome)).Inc()
	default:
		r.metrics.AuditEventsDropped.Inc()
		r.logger.WithField("action", event.Action).Warn("audit queue full, event dropped")
	}
}

func (r *Recorder) drain() {
	defer close(r.done)
	for event := range r.queue {
		if err := r.sink.Write(event); err != nil {
			// Persistence failures degrade audit, not availability.
			r.logger.WithError(err).WithField("action", event.Action).Error("audit event write failed")
		}
	}
}

// Close stops accepting events, flushes the queue and closes the sink.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.queue)
	})
	<-r.done
	return r.sink.Close()
}

// Shutdown flushes the recorder, honoring the context deadline.
func (r *Recorder) Shutdown(ctx context.Context) error {
	flushed := make(chan error, 1)
	go func() { flushed <- r.Close() }()

	select {
	case err := <-flushed:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
