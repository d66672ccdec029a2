// Package candidate implements the candidate lifecycle service: the
// confirm/edit/ignore state machine that turns extracted task candidates
// into user-owned tasks.
package candidate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/optional"
	"github.com/studentos/backend/repository"
	"github.com/studentos/backend/usecase"
)

// ConfirmOverrides are caller-supplied replacements for candidate fields when
// materializing a task. A set-and-non-null field wins over the candidate's
// value; an explicit null clears the field; an omitted field falls back to
// the candidate.
type ConfirmOverrides struct {
	Title   optional.Value[string]
	Type    optional.Value[domain.CandidateType]
	Module  optional.Value[string]
	DueDate optional.Value[time.Time]
	Notes   optional.Value[string]
}

// ConfirmResult carries the materialized task and the updated candidate.
type ConfirmResult struct {
	Task      *domain.Task
	Candidate *domain.TaskCandidate
}

// UseCase orchestrates candidate state transitions. All operations are scoped
// by the verified caller's user id; a row owned by someone else is
// indistinguishable from a missing row.
type UseCase struct {
	candidates repository.CandidateRepository
	tasks      repository.TaskRepository
	sources    repository.SourceMessageRepository
	recorder   usecase.LifecycleRecorder
	logger     *zap.Logger
}

func New(
	candidates repository.CandidateRepository,
	tasks repository.TaskRepository,
	sources repository.SourceMessageRepository,
	recorder usecase.LifecycleRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		candidates: candidates,
		tasks:      tasks,
		sources:    sources,
		recorder:   recorder,
		logger:     logger,
	}
}

// Confirm materializes a task from a "new" candidate and flips the candidate
// to "confirmed".
//
// The two writes are separate store operations and the contract is
// at-least-once: if the process dies after the task insert, the candidate is
// left "new" and repaired by the reconciler. The unique candidate_id index
// prevents a retry from creating a second task, and the status update is a
// compare-and-set, so of two concurrent confirms exactly one succeeds and the
// other observes INVALID_STATE.
func (uc *UseCase) Confirm(ctx context.Context, candidateID, ownerID string, overrides ConfirmOverrides) (*ConfirmResult, error) {
	candidate, err := uc.candidates.GetByID(ctx, candidateID, ownerID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}
	if !domain.CanTransition(candidate.Status, domain.CandidateConfirmed) {
		return nil, domain.ErrAlreadyProcessed
	}

	task, err := uc.tasks.Create(ctx, buildTask(candidate, overrides))
	if err != nil {
		return nil, err
	}

	updated, err := uc.candidates.SetStatus(ctx, candidateID, ownerID, domain.CandidateNew, domain.CandidateConfirmed)
	if err != nil {
		// The task exists but the candidate still reads "new"; the
		// reconciler will converge it. Surface the failure to the caller.
		uc.logger.Error("confirm partially applied",
			zap.String("candidate_id", candidateID),
			zap.String("task_id", task.ID),
			zap.Error(err))
		return nil, err
	}

	if uc.recorder != nil {
		if recErr := uc.recorder.RecordConfirm(ctx, candidateID, task.ID, ownerID); recErr != nil {
			uc.logger.Warn("confirm event not recorded", zap.Error(recErr))
		}
	}

	return &ConfirmResult{Task: task, Candidate: updated}, nil
}

// Edit replaces the user-facing fields of a "new" candidate and marks it
// "edited". Editing an already-processed candidate is an INVALID_STATE
// failure; the transition table allows edits from "new" only.
func (uc *UseCase) Edit(ctx context.Context, candidateID, ownerID string, edit repository.CandidateEdit) (*domain.TaskCandidate, error) {
	return uc.candidates.ApplyEdit(ctx, candidateID, ownerID, edit)
}

// Ignore dismisses a "new" candidate. The optional reason is logged and
// recorded for analytics but never written to the candidate row.
func (uc *UseCase) Ignore(ctx context.Context, candidateID, ownerID string, reason domain.IgnoreReason) (*domain.TaskCandidate, error) {
	candidate, err := uc.candidates.SetStatus(ctx, candidateID, ownerID, domain.CandidateNew, domain.CandidateIgnored)
	if err != nil {
		return nil, err
	}

	if reason != "" {
		uc.logger.Info("candidate ignored",
			zap.String("candidate_id", candidateID),
			zap.String("reason", string(reason)))
		if uc.recorder != nil {
			if recErr := uc.recorder.RecordIgnore(ctx, candidateID, ownerID, reason); recErr != nil {
				uc.logger.Warn("ignore reason not recorded", zap.Error(recErr))
			}
		}
	}

	return candidate, nil
}

// Source returns the immutable source-message snippet a candidate was
// extracted from. Both lookups are required to hit.
func (uc *UseCase) Source(ctx context.Context, candidateID, ownerID string) (*domain.SourceMessage, error) {
	candidate, err := uc.candidates.GetByID(ctx, candidateID, ownerID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}

	snippet, err := uc.sources.GetSnippet(ctx, candidate.SourceMessageID)
	if err != nil {
		return nil, err
	}
	if snippet == nil {
		return nil, domain.ErrSourceNotFound
	}
	return snippet, nil
}

func buildTask(c *domain.TaskCandidate, overrides ConfirmOverrides) *domain.Task {
	task := &domain.Task{
		CandidateID: c.ID,
		UserID:      c.UserID,
		ThreadID:    c.ThreadID,
		Title:       c.Title,
		Type:        c.Type,
		Module:      c.Module,
		DueDate:     c.DueDate,
		Links:       c.Links,
		Status:      domain.TaskPending,
	}
	if title, ok := overrides.Title.Get(); ok {
		task.Title = title
	}
	if typ, ok := overrides.Type.Get(); ok {
		task.Type = typ
	}
	if overrides.Module.IsSet() {
		task.Module = overrides.Module.Ptr()
	}
	if overrides.DueDate.IsSet() {
		task.DueDate = overrides.DueDate.Ptr()
	}
	if overrides.Notes.IsSet() {
		task.Notes = overrides.Notes.Ptr()
	}
	return task
}
