package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the payment identifier, so entries for the same payment are
// persisted in the order they were produced.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	service ports.AuditService
	log     zerolog.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop is called;
// cancelling ctx does not interrupt them, so entries enqueued while the HTTP
// server drains are still persisted. Processing uses ctx stripped of its
// cancellation for the same reason.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker channels and blocks until every queued entry has
// been processed. Call it only after the producers have stopped; Record on a
// stopped Dispatcher panics.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		for _, ch := range d.workers {
			close(ch)
		}
	})
	d.wg.Wait()
}

// Record sends an entry to the worker responsible for its payment. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.PaymentID)
	d.workers[idx] <- entry
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a payment identifier deterministically to a worker index.
func (d *Dispatcher) shardIndex(paymentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(paymentID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for entry := range ch {
		if err := d.service.Process(ctx, entry); err != nil {
			d.log.Error().Err(err).
				Str("payment_id", entry.PaymentID).
				Int("worker_id", id).
				Msg("audit entry processing failed")
		}
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
	}
}
