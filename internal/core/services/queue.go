package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genscholar/scholar-engine/internal/core/ports/driving"
	"github.com/genscholar/scholar-engine/internal/logger"
)

// DefaultIngestDelay lets the upload transaction settle before the pipeline
// reads the document row.
const DefaultIngestDelay = 5 * time.Second

// ErrQueueFull indicates the ingest queue cannot accept more work.
var ErrQueueFull = errors.New("ingest queue full")

// IngestQueue runs ingestions on a single background worker, serialising
// them so two ingestions can never interleave on the same workspace index.
// Enqueue is fire-and-forget: results are recorded on the workspace row.
type IngestQueue struct {
	ingestor driving.Ingestor
	delay    time.Duration
	queue    chan uint

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewIngestQueue creates a queue with the given settle delay and buffer.
func NewIngestQueue(ingestor driving.Ingestor, delay time.Duration, buffer int) *IngestQueue {
	if delay < 0 {
		delay = DefaultIngestDelay
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &IngestQueue{
		ingestor: ingestor,
		delay:    delay,
		queue:    make(chan uint, buffer),
	}
}

// Start launches the worker goroutine. Calling Start twice is a no-op.
func (q *IngestQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.running = true
	q.stopCh = make(chan struct{})

	q.wg.Add(1)
	go q.run(q.stopCh)
}

// Enqueue schedules a document for ingestion.
func (q *IngestQueue) Enqueue(documentID uint) error {
	select {
	case q.queue <- documentID:
		logger.Debug("Ingest queue: enqueued document %d", documentID)
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts the worker down and waits for an in-flight ingestion to
// finish. Queued but unstarted documents are dropped.
func (q *IngestQueue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	close(q.stopCh)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *IngestQueue) run(stopCh chan struct{}) {
	defer q.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		case id := <-q.queue:
			if !q.settle(stopCh) {
				return
			}
			res := q.ingestor.Ingest(context.Background(), id)
			if res.Failed() {
				logger.Warn("Ingest queue: document %d failed after %s: %v", id, res.Step, res.Err)
			} else {
				logger.Info("Ingest queue: document %d indexed", id)
			}
		}
	}
}

// settle waits the configured delay, returning false when stopped.
func (q *IngestQueue) settle(stopCh chan struct{}) bool {
	if q.delay == 0 {
		return true
	}
	t := time.NewTimer(q.delay)
	defer t.Stop()
	select {
	case <-stopCh:
		return false
	case <-t.C:
		return true
	}
}
