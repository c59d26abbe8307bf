package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadvault/crm-api/internal/api/metrics"
	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// ErrQueueFull is returned by Record when the worker's buffer is saturated.
var ErrQueueFull = errors.New("audit queue full")

// AuditDispatcher hands login sessions to a fixed set of workers that write
// them to the configured sink, keeping the audit write off the request path.
// Sessions of the same user always go to the same worker, so they are stored
// in login order.
type AuditDispatcher struct {
	workers []chan *domain.Session
	sink    ports.SessionRecorder
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.SessionRecorder, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan *domain.Session, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Session, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// flushes what is already queued and exits; Wait blocks until they are done.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues a session without blocking. It satisfies
// ports.SessionRecorder so the auth service does not know writes are async.
func (d *AuditDispatcher) Record(_ context.Context, s *domain.Session) error {
	idx := d.shardIndex(s.UserID)
	select {
	case d.workers[idx] <- s:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.SessionAuditTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Session) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case s := <-ch:
			d.write(context.Background(), id, s)
		}
	}
}

// drain writes whatever is still buffered after shutdown was requested.
func (d *AuditDispatcher) drain(id int, ch <-chan *domain.Session) {
	for {
		select {
		case s := <-ch:
			d.write(context.Background(), id, s)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) write(parent context.Context, id int, s *domain.Session) {
	ctx, cancel := context.WithTimeout(parent, writeTimeout)
	defer cancel()

	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(d.workers[id])))
	if err := d.sink.Record(ctx, s); err != nil {
		metrics.SessionAuditTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Err(err).
			Str("user_id", s.UserID).
			Int("worker_id", id).
			Msg("session audit write failed")
		return
	}
	metrics.SessionAuditTotal.WithLabelValues("recorded").Inc()
}
