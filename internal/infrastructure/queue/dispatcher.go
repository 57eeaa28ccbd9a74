package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/technotes/technotes-api/internal/api/metrics"
	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher persists audit entries off the request path. Entries are routed
// to a fixed set of workers by hashing the subject id, so changes to the same
// record are written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers flush what is already queued
// and exit once ctx is cancelled; use Wait to block until they are done.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues entry without blocking. When the shard is full the entry is
// dropped and counted.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	idx := d.shardIndex(entry.SubjectID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.dropped.Add(1)
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("action", string(entry.Action)).
			Str("subject_id", entry.SubjectID).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// Dropped reports how many entries were discarded because a shard was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.persist(ctx, id, entry)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	for {
		select {
		case entry := <-ch:
			d.persist(drainCtx, id, entry)
		default:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, id int, entry domain.AuditEntry) {
	if err := d.repo.Insert(ctx, &entry); err != nil {
		d.log.Error().Err(err).
			Str("action", string(entry.Action)).
			Str("subject_id", entry.SubjectID).
			Int("worker_id", id).
			Msg("audit entry not persisted")
	}
}
