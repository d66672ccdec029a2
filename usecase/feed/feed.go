// Package feed merges candidate and task queries into the views the mobile
// client renders: the combined triage feed, the confidence-ranked "new"
// section and the upcoming-deadlines strip.
package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

// DefaultUpcomingLimit caps the upcoming-tasks view when the caller does not
// supply a limit.
const DefaultUpcomingLimit = 10

// Feed is the merged response: both lists are returned as-is, without
// cross-relation joins; the client partitions them for display.
type Feed struct {
	Candidates []domain.TaskCandidate `json:"candidates"`
	Tasks      []domain.Task          `json:"tasks"`
}

type UseCase struct {
	candidates repository.CandidateRepository
	tasks      repository.TaskRepository
	logger     *zap.Logger
}

func New(candidates repository.CandidateRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		candidates: candidates,
		tasks:      tasks,
		logger:     logger,
	}
}

// Get runs the two scoped queries. statusFilter is one candidate status or
// "all"/"" for everything; tasks are never filtered here.
func (uc *UseCase) Get(ctx context.Context, ownerID, statusFilter string) (*Feed, error) {
	if statusFilter == "all" {
		statusFilter = ""
	}

	candidates, err := uc.candidates.List(ctx, ownerID, repository.CandidateFilter{Status: statusFilter})
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.List(ctx, ownerID, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	feed := &Feed{Candidates: candidates, Tasks: tasks}
	if feed.Candidates == nil {
		feed.Candidates = []domain.TaskCandidate{}
	}
	if feed.Tasks == nil {
		feed.Tasks = []domain.Task{}
	}
	return feed, nil
}

// NewCandidates returns unprocessed candidates ranked by confidence score
// descending, then recency.
func (uc *UseCase) NewCandidates(ctx context.Context, ownerID string) ([]domain.TaskCandidate, error) {
	return uc.candidates.ListNew(ctx, ownerID)
}

// UpcomingTasks returns pending tasks that have a due date, soonest first.
func (uc *UseCase) UpcomingTasks(ctx context.Context, ownerID string, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return uc.tasks.ListUpcoming(ctx, ownerID, limit)
}
