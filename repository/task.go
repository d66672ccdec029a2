package repository

import (
	"context"

	"github.com/studentos/backend/domain"
)

// MaxPageSize bounds an explicit listing limit. A zero limit means the
// listing is not paged at all; the feed relies on that to see every task.
const MaxPageSize = 100

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status domain.TaskStatus
	Type   domain.CandidateType
	Limit  int
	Offset int
}

// TaskRepository is the owner-scoped accessor for the tasks relation.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// GetByID returns (nil, nil) when no row matches id+owner.
	GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// List orders by due_date ascending with null due dates last.
	List(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error)
	// ListUpcoming returns pending tasks with a due date, soonest first.
	ListUpcoming(ctx context.Context, ownerID string, limit int) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Delete succeeds silently when no owned row exists.
	Delete(ctx context.Context, id, ownerID string) error
}
