package services_test

import (
	"sync"
	"testing"
	"time"

	"marrent/internal/domain"
)

type backupRecorder struct {
	mu      sync.Mutex
	reasons []string
}

func (b *backupRecorder) PushAsync(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reasons = append(b.reasons, reason)
}

func (b *backupRecorder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.reasons)
}

// Every successful write pushes the store mirror, not just rental
// operations.
func TestWritesPushBackup(t *testing.T) {
	db := memdbAll(t)
	rentalSvc, invSvc, custSvc := newRentalSvc(db)
	rec := &backupRecorder{}
	rentalSvc.Backup = rec
	invSvc.Backup = rec
	custSvc.Backup = rec

	eqID, err := invSvc.Register("Dell", "X1", "", domain.StatusAvailable, 100)
	if err != nil {
		t.Fatal(err)
	}
	if rec.count() != 1 {
		t.Fatalf("equipment create must push, got %d pushes", rec.count())
	}

	custID, err := custSvc.Register("Ana", "5551234567", "ana@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if rec.count() != 2 {
		t.Fatalf("customer create must push, got %d pushes", rec.count())
	}

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rentalID, err := rentalSvc.Create(custID, []string{eqID}, start, start.AddDate(0, 0, 7), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := rentalSvc.Close(rentalID); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 4 {
		t.Fatalf("rental create+close must push, got %d pushes", rec.count())
	}

	if err := invSvc.SetStatus([]string{eqID}, domain.StatusMaintenance); err != nil {
		t.Fatal(err)
	}
	if err := custSvc.Update(custID, "Ana", "5551234567", "ana@y.com"); err != nil {
		t.Fatal(err)
	}
	if err := invSvc.Delete(eqID); err != nil {
		t.Fatal(err)
	}
	if err := custSvc.Delete(custID); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 8 {
		t.Fatalf("status/update/delete writes must push, got %d pushes", rec.count())
	}

	// rejected writes do not push
	if _, err := custSvc.Register("Bad", "123", "x@y.com"); err == nil {
		t.Fatal("bad phone must be rejected")
	}
	if rec.count() != 8 {
		t.Fatalf("failed write must not push, got %d pushes", rec.count())
	}
}
