package services

import (
	"context"
	"testing"
	"time"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository/repositorytest"
)

const ownerID = "11111111-1111-1111-1111-111111111111"

func strandedCandidate(id string) domain.TaskCandidate {
	return domain.TaskCandidate{
		ID:        id,
		UserID:    ownerID,
		Type:      domain.TypeDeadline,
		Title:     "stranded " + id,
		Status:    domain.CandidateNew,
		CreatedAt: time.Now().UTC(),
	}
}

func TestSweep_RepairsStrandedCandidates(t *testing.T) {
	store := repositorytest.NewCandidateStore(
		strandedCandidate("c1"),
		strandedCandidate("c2"),
	)
	// c1 has a task despite still reading "new"; c2 is genuinely unprocessed.
	store.MarkStalled("c1")

	r := NewReconciler(store, "", 0, nil)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	repaired, _ := store.GetByID(context.Background(), "c1", ownerID)
	if repaired.Status != domain.CandidateConfirmed {
		t.Errorf("c1 status = %q, want confirmed", repaired.Status)
	}
	untouched, _ := store.GetByID(context.Background(), "c2", ownerID)
	if untouched.Status != domain.CandidateNew {
		t.Errorf("c2 status = %q, want new", untouched.Status)
	}
}

func TestSweep_NoStranded(t *testing.T) {
	store := repositorytest.NewCandidateStore(strandedCandidate("c1"))
	r := NewReconciler(store, "", 0, nil)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	c, _ := store.GetByID(context.Background(), "c1", ownerID)
	if c.Status != domain.CandidateNew {
		t.Errorf("candidate without a task must stay new, got %q", c.Status)
	}
}

func TestSweep_ToleratesConcurrentConfirm(t *testing.T) {
	c := strandedCandidate("c1")
	c.Status = domain.CandidateConfirmed
	store := repositorytest.NewCandidateStore(c)
	store.MarkStalled("c1")

	r := NewReconciler(store, "", 0, nil)
	if err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep must tolerate an already-confirmed candidate: %v", err)
	}
}

func TestReconciler_StartStop(t *testing.T) {
	r := NewReconciler(repositorytest.NewCandidateStore(), "@every 1h", 10, nil)
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
