package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

const taskColumns = `
	id, candidate_id, user_id, thread_id, title, type, module, due_date,
	notes, links, status, created_at, completed_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}

	const query = `
	INSERT INTO tasks (id, candidate_id, user_id, thread_id, title, type, module, due_date, notes, links, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.CandidateID,
		task.UserID,
		task.ThreadID,
		task.Title,
		task.Type,
		task.Module,
		task.DueDate,
		task.Notes,
		task.Links,
		task.Status,
	).Scan(&task.CreatedAt); err != nil {
		// The unique candidate_id index is the confirm idempotency key:
		// a second task for the same candidate cannot be created.
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, domain.PersistenceError("create task", err)
	}
	return task, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	task, err := scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.PersistenceError("fetch task", err)
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR type = $3)
	ORDER BY due_date ASC NULLS LAST, created_at ASC
	LIMIT $4 OFFSET $5
	`
	// LIMIT NULL is "no limit": the feed lists with a zero-value filter and
	// must see every task, so only an explicit client limit pages.
	var limit *int
	if capped := capLimit(filter.Limit); capped > 0 {
		limit = &capped
	}
	rows, err := r.pool.Query(ctx, query,
		ownerID,
		filter.Status,
		filter.Type,
		limit,
		filter.Offset,
	)
	if err != nil {
		return nil, domain.PersistenceError("list tasks", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListUpcoming(ctx context.Context, ownerID string, limit int) ([]domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks
	WHERE user_id = $1 AND status = 'pending' AND due_date IS NOT NULL
	ORDER BY due_date ASC
	LIMIT $2
	`
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, query, ownerID, capLimit(limit))
	if err != nil {
		return nil, domain.PersistenceError("list upcoming tasks", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		type = $4,
		module = $5,
		due_date = $6,
		notes = $7,
		links = $8,
		status = $9,
		completed_at = $10
	WHERE id = $1 AND user_id = $2
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Type,
		task.Module,
		task.DueDate,
		task.Notes,
		task.Links,
		task.Status,
		task.CompletedAt,
	).Scan(&task.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.PersistenceError("update task", err)
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	if _, err := r.pool.Exec(ctx, query, id, ownerID); err != nil {
		return domain.PersistenceError("delete task", err)
	}
	// Deleting an absent row succeeds silently.
	return nil
}

func scanTask(row pgRow) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.CandidateID,
		&t.UserID,
		&t.ThreadID,
		&t.Title,
		&t.Type,
		&t.Module,
		&t.DueDate,
		&t.Notes,
		&t.Links,
		&t.Status,
		&t.CreatedAt,
		&t.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, domain.PersistenceError("scan task", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError("iterate tasks", err)
	}
	return tasks, nil
}
