package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paysecure/payment-portal/internal/core/domain"
)

type captureAuditService struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	done    chan struct{}
	want    int
}

func newCaptureAuditService(want int) *captureAuditService {
	return &captureAuditService{done: make(chan struct{}), want: want}
}

func (s *captureAuditService) Process(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) == s.want {
		close(s.done)
	}
	return nil
}

func (s *captureAuditService) wait(t *testing.T) []domain.AuditEntry {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d audit entries", s.want)
	}
	return s.snapshot()
}

func (s *captureAuditService) snapshot() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.entries...)
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	svc := newCaptureAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(context.Background())
	defer d.Stop()

	for _, action := range []string{domain.AuditActionCreated, domain.AuditActionUpdated, domain.AuditActionVerified} {
		d.Record(domain.AuditEntry{PaymentID: "pay-1", Action: action, ActorID: "u1", Timestamp: time.Now().UTC()})
	}

	got := svc.wait(t)
	if len(got) != 3 {
		t.Fatalf("delivered %d entries, want 3", len(got))
	}
}

// Entries for the same payment always land on the same worker, so they are
// processed in submission order.
func TestDispatcher_SamePaymentOrdered(t *testing.T) {
	const n = 10
	svc := newCaptureAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())
	defer d.Stop()

	for i := 0; i < n; i++ {
		d.Record(domain.AuditEntry{
			PaymentID: "pay-ordered",
			Action:    domain.AuditActionUpdated,
			ActorID:   "u1",
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Millisecond),
		})
	}

	got := svc.wait(t)
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Fatalf("entry %d processed out of order", i)
		}
	}
}

// Stop drains everything already enqueued: entries recorded while the server
// was shutting down are persisted, not dropped.
func TestDispatcher_StopDrains(t *testing.T) {
	const n = 50
	svc := newCaptureAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < n; i++ {
		d.Record(domain.AuditEntry{
			PaymentID: "pay-" + string(rune('a'+i%8)),
			Action:    domain.AuditActionCreated,
			ActorID:   "u1",
			Timestamp: time.Now().UTC(),
		})
	}

	d.Stop()
	if got := svc.snapshot(); len(got) != n {
		t.Fatalf("processed %d entries after Stop, want %d", len(got), n)
	}
}

// Workers survive cancellation of the start context; only Stop ends them.
func TestDispatcher_CancelledContextStillDelivers(t *testing.T) {
	svc := newCaptureAuditService(1)
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	d.Record(domain.AuditEntry{PaymentID: "pay-1", Action: domain.AuditActionDenied, ActorID: "u1", Timestamp: time.Now().UTC()})
	d.Stop()

	if got := svc.snapshot(); len(got) != 1 {
		t.Fatalf("processed %d entries, want 1", len(got))
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newCaptureAuditService(1), zerolog.Nop())
	first := d.shardIndex("pay-42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("pay-42") != first {
			t.Fatalf("shard index not stable")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newCaptureAuditService(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
