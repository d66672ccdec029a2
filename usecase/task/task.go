// Package task implements CRUD over confirmed tasks. Tasks only ever come
// into existence through candidate confirmation; this service mutates and
// removes them.
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/optional"
	"github.com/studentos/backend/repository"
)

// Patch is a partial task update. Omitted fields are untouched; module,
// due_date, notes and links may be cleared with an explicit null.
type Patch struct {
	Title   optional.Value[string]
	Type    optional.Value[domain.CandidateType]
	Module  optional.Value[string]
	DueDate optional.Value[time.Time]
	Notes   optional.Value[string]
	Links   optional.Value[[]string]
	Status  optional.Value[domain.TaskStatus]
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *UseCase) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (uc *UseCase) Get(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Update applies a partial patch. Status changes keep the invariant that
// completed_at is non-nil iff status is completed.
func (uc *UseCase) Update(ctx context.Context, id, ownerID string, patch Patch) (*domain.Task, error) {
	task, err := uc.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title, ok := patch.Title.Get(); ok {
		task.Title = title
	}
	if typ, ok := patch.Type.Get(); ok {
		task.Type = typ
	}
	if patch.Module.IsSet() {
		task.Module = patch.Module.Ptr()
	}
	if patch.DueDate.IsSet() {
		task.DueDate = patch.DueDate.Ptr()
	}
	if patch.Notes.IsSet() {
		task.Notes = patch.Notes.Ptr()
	}
	if links, ok := patch.Links.Get(); ok {
		task.Links = links
	} else if patch.Links.IsNull() {
		task.Links = nil
	}
	if status, ok := patch.Status.Get(); ok && status != task.Status {
		task.Status = status
		if status == domain.TaskCompleted {
			completed := uc.now().UTC()
			task.CompletedAt = &completed
		} else {
			task.CompletedAt = nil
		}
	}

	return uc.tasks.Update(ctx, task)
}

// Delete removes an owned task; deleting an absent task succeeds silently.
func (uc *UseCase) Delete(ctx context.Context, id, ownerID string) error {
	return uc.tasks.Delete(ctx, id, ownerID)
}

// Complete marks a task completed. The operation is idempotent: completing
// an already-completed task returns it unchanged, completed_at included.
func (uc *UseCase) Complete(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, err := uc.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return task, nil
	}

	completed := uc.now().UTC()
	task.Status = domain.TaskCompleted
	task.CompletedAt = &completed
	return uc.tasks.Update(ctx, task)
}
