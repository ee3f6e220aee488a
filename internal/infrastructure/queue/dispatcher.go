package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/api/metrics"
	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists generation records off the request path. Records are
// routed to a fixed set of workers by consistent hashing on the club id, so
// one club's records are archived in the order they were produced.
type Dispatcher struct {
	workers []chan *domain.GenerationRecord
	repo    ports.ArchiveRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ArchiveRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.GenerationRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.GenerationRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its club. When that
// worker's buffer is full the record is dropped with a warning; archival is
// best-effort and must never block a request.
func (d *Dispatcher) Enqueue(rec *domain.GenerationRecord) {
	idx := d.shardIndex(rec.ClubID)
	select {
	case d.workers[idx] <- rec:
		metrics.ArchiveQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ArchiveErrorsTotal.Inc()
		d.log.Warn().
			Str("club_id", rec.ClubID).
			Str("kind", rec.Kind).
			Msg("archive queue full, dropping generation record")
	}
}

// shardIndex maps a club id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clubID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clubID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.GenerationRecord) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			metrics.ArchiveQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, rec); err != nil {
				metrics.ArchiveErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("club_id", rec.ClubID).
					Str("kind", rec.Kind).
					Int("worker_id", id).
					Msg("failed to archive generation record")
			}
		}
	}
}
