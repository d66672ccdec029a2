package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/optional"
	"github.com/studentos/backend/repository"
	"github.com/studentos/backend/repository/repositorytest"
)

const ownerID = "11111111-1111-1111-1111-111111111111"

func pendingTask(id string) domain.Task {
	due := time.Date(2025, 12, 22, 14, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:          id,
		CandidateID: "cand-" + id,
		UserID:      ownerID,
		Title:       "Submit Lab",
		Type:        domain.TypeDeadline,
		DueDate:     &due,
		Status:      domain.TaskPending,
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestComplete_SetsCompletedAt(t *testing.T) {
	store := repositorytest.NewTaskStore(pendingTask("t1"))
	uc := New(store, nil)
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	uc.now = fixedClock(now)

	task, err := uc.Complete(context.Background(), "t1", ownerID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if task.Status != domain.TaskCompleted {
		t.Errorf("status = %q, want completed", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("completed_at = %v, want %v", task.CompletedAt, now)
	}
}

func TestComplete_Idempotent(t *testing.T) {
	store := repositorytest.NewTaskStore(pendingTask("t1"))
	uc := New(store, nil)
	first := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	uc.now = fixedClock(first)

	if _, err := uc.Complete(context.Background(), "t1", ownerID); err != nil {
		t.Fatalf("first Complete failed: %v", err)
	}

	uc.now = fixedClock(first.Add(time.Hour))
	task, err := uc.Complete(context.Background(), "t1", ownerID)
	if err != nil {
		t.Fatalf("second Complete failed: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Errorf("completed_at moved on repeat completion: %v, want %v", task.CompletedAt, first)
	}
}

func TestUpdate_StatusKeepsCompletedAtInvariant(t *testing.T) {
	store := repositorytest.NewTaskStore(pendingTask("t1"))
	uc := New(store, nil)
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	uc.now = fixedClock(now)

	task, err := uc.Update(context.Background(), "t1", ownerID, Patch{
		Status: optional.Of(domain.TaskCompleted),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("completing via patch must set completed_at")
	}

	task, err = uc.Update(context.Background(), "t1", ownerID, Patch{
		Status: optional.Of(domain.TaskPending),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("reopening must clear completed_at")
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	store := repositorytest.NewTaskStore(pendingTask("t1"))
	uc := New(store, nil)

	task, err := uc.Update(context.Background(), "t1", ownerID, Patch{
		Title:   optional.Of("Submit Lab Report"),
		DueDate: optional.Null[time.Time](),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if task.Title != "Submit Lab Report" {
		t.Errorf("title = %q", task.Title)
	}
	if task.DueDate != nil {
		t.Error("explicit null must clear due_date")
	}
	if task.Type != domain.TypeDeadline {
		t.Error("omitted type must be untouched")
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := New(repositorytest.NewTaskStore(), nil)
	_, err := uc.Get(context.Background(), "missing", ownerID)
	if !domain.IsCode(err, domain.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestGet_OwnerIsolation(t *testing.T) {
	uc := New(repositorytest.NewTaskStore(pendingTask("t1")), nil)
	_, err := uc.Get(context.Background(), "t1", "someone-else")
	if !domain.IsCode(err, domain.ErrCodeNotFound) {
		t.Errorf("another owner's task must read NOT_FOUND, got %v", err)
	}
}

func TestDelete_AbsentIsSilent(t *testing.T) {
	uc := New(repositorytest.NewTaskStore(), nil)
	if err := uc.Delete(context.Background(), "missing", ownerID); err != nil {
		t.Errorf("deleting an absent task must succeed, got %v", err)
	}
}

func TestList_ZeroLimitReturnsEverything(t *testing.T) {
	store := repositorytest.NewTaskStore()
	for i := 0; i < 130; i++ {
		task := pendingTask(fmt.Sprintf("t%03d", i))
		task.CandidateID = "cand-" + task.ID
		store.Put(task)
	}
	uc := New(store, nil)

	out, err := uc.List(context.Background(), ownerID, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out) != 130 {
		t.Errorf("unpaged list returned %d tasks, want 130", len(out))
	}

	capped, err := uc.List(context.Background(), ownerID, repository.TaskFilter{Limit: 500})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(capped) != repository.MaxPageSize {
		t.Errorf("oversized limit returned %d tasks, want the %d cap", len(capped), repository.MaxPageSize)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	uc := New(repositorytest.NewTaskStore(), nil)
	out, err := uc.List(context.Background(), ownerID, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out == nil {
		t.Error("empty list must serialize as [] not null")
	}
}
