package domain

import "time"

// TaskStatus is the lifecycle state of a confirmed task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Task is a user-confirmed actionable item, always created from exactly one
// candidate. CandidateID is unique across tasks; it doubles as the idempotency
// key for the confirm operation.
type Task struct {
	ID          string        `json:"id"`
	CandidateID string        `json:"candidate_id"`
	UserID      string        `json:"user_id"`
	ThreadID    *string       `json:"thread_id"`
	Title       string        `json:"title"`
	Type        CandidateType `json:"type"`
	Module      *string       `json:"module"`
	DueDate     *time.Time    `json:"due_date"`
	Notes       *string       `json:"notes"`
	Links       []string      `json:"links"`
	Status      TaskStatus    `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskCompleted
}
