package repository

import (
	"context"
	"time"

	"github.com/studentos/backend/domain"
)

// CandidateFilter narrows candidate listings. OwnerID is mandatory on every
// operation: the owner-equality filter is the authorization boundary at this
// layer, even though the caller's identity is already verified upstream.
type CandidateFilter struct {
	Status string // one candidate status, or "" for all
}

// CandidateEdit is a full replacement of the user-facing candidate fields.
// Pointer fields left nil are not touched.
type CandidateEdit struct {
	Title    string
	Type     domain.CandidateType
	Module   *string
	DueDate  *time.Time
	Location *string
}

// CandidateRepository is the owner-scoped accessor for the task_candidates
// relation. Candidates are created by the external ingestion pipeline and
// never deleted here; only status (and edit fields) are mutated.
type CandidateRepository interface {
	// GetByID returns (nil, nil) when no row matches id+owner.
	GetByID(ctx context.Context, id, ownerID string) (*domain.TaskCandidate, error)
	List(ctx context.Context, ownerID string, filter CandidateFilter) ([]domain.TaskCandidate, error)
	// ListNew returns unprocessed candidates ranked by confidence_score
	// descending, then recency.
	ListNew(ctx context.Context, ownerID string) ([]domain.TaskCandidate, error)
	// SetStatus moves a candidate from the expected status to the new one
	// as a single compare-and-set; it returns domain.ErrAlreadyProcessed
	// when the row has already left the expected status and
	// domain.ErrCandidateNotFound when no owned row exists.
	SetStatus(ctx context.Context, id, ownerID string, from, to domain.CandidateStatus) (*domain.TaskCandidate, error)
	// ApplyEdit replaces the edit fields and moves status to "edited" under
	// the same compare-and-set discipline as SetStatus.
	ApplyEdit(ctx context.Context, id, ownerID string, edit CandidateEdit) (*domain.TaskCandidate, error)
	// ListStalled returns candidates still "new" whose confirming task
	// already exists; used by the confirm reconciler.
	ListStalled(ctx context.Context, limit int) ([]domain.TaskCandidate, error)
}
