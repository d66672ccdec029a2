package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

const candidateColumns = `
	id, source_message_id, user_id, type, title, module, due_date, location,
	confidence, confidence_score, extraction_reasons, links, attachments,
	status, thread_id, created_at, updated_at`

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository returns a Postgres-backed CandidateRepository.
func NewCandidateRepository(pool *pgxpool.Pool) repository.CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.TaskCandidate, error) {
	const query = `
	SELECT` + candidateColumns + `
	FROM task_candidates
	WHERE id = $1 AND user_id = $2
	`
	candidate, err := scanCandidate(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.PersistenceError("fetch candidate", err)
	}
	return candidate, nil
}

func (r *candidateRepository) List(ctx context.Context, ownerID string, filter repository.CandidateFilter) ([]domain.TaskCandidate, error) {
	const query = `
	SELECT` + candidateColumns + `
	FROM task_candidates
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID, filter.Status)
	if err != nil {
		return nil, domain.PersistenceError("list candidates", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (r *candidateRepository) ListNew(ctx context.Context, ownerID string) ([]domain.TaskCandidate, error) {
	const query = `
	SELECT` + candidateColumns + `
	FROM task_candidates
	WHERE user_id = $1 AND status = 'new'
	ORDER BY confidence_score DESC NULLS LAST, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, domain.PersistenceError("list new candidates", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

// SetStatus is a compare-and-set: the row must still carry the expected
// status for the write to land. Of two concurrent confirms, exactly one wins.
func (r *candidateRepository) SetStatus(ctx context.Context, id, ownerID string, from, to domain.CandidateStatus) (*domain.TaskCandidate, error) {
	const query = `
	UPDATE task_candidates
	SET status = $4, updated_at = NOW()
	WHERE id = $1 AND user_id = $2 AND status = $3
	RETURNING` + candidateColumns + `
	`
	candidate, err := scanCandidate(r.pool.QueryRow(ctx, query, id, ownerID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missReason(ctx, id, ownerID)
		}
		return nil, domain.PersistenceError("update candidate status", err)
	}
	return candidate, nil
}

func (r *candidateRepository) ApplyEdit(ctx context.Context, id, ownerID string, edit repository.CandidateEdit) (*domain.TaskCandidate, error) {
	const query = `
	UPDATE task_candidates
	SET title = $3,
		type = $4,
		module = COALESCE($5, module),
		due_date = COALESCE($6, due_date),
		location = COALESCE($7, location),
		status = 'edited',
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2 AND status = 'new'
	RETURNING` + candidateColumns + `
	`
	candidate, err := scanCandidate(r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		edit.Title,
		edit.Type,
		edit.Module,
		edit.DueDate,
		edit.Location,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missReason(ctx, id, ownerID)
		}
		return nil, domain.PersistenceError("edit candidate", err)
	}
	return candidate, nil
}

func (r *candidateRepository) ListStalled(ctx context.Context, limit int) ([]domain.TaskCandidate, error) {
	const query = `
	SELECT
		c.id, c.source_message_id, c.user_id, c.type, c.title, c.module,
		c.due_date, c.location, c.confidence, c.confidence_score,
		c.extraction_reasons, c.links, c.attachments, c.status, c.thread_id,
		c.created_at, c.updated_at
	FROM task_candidates c
	JOIN tasks t ON t.candidate_id = c.id
	WHERE c.status = 'new'
	LIMIT $1
	`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, capLimit(limit))
	if err != nil {
		return nil, domain.PersistenceError("list stalled candidates", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

// missReason disambiguates a compare-and-set miss: either the row does not
// exist for this owner, or it has already left the expected status.
func (r *candidateRepository) missReason(ctx context.Context, id, ownerID string) error {
	const query = `SELECT status FROM task_candidates WHERE id = $1 AND user_id = $2`
	var status domain.CandidateStatus
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCandidateNotFound
		}
		return domain.PersistenceError("fetch candidate status", err)
	}
	return domain.ErrAlreadyProcessed
}

func scanCandidate(row pgRow) (*domain.TaskCandidate, error) {
	var c domain.TaskCandidate
	var (
		extraction  []byte
		attachments []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.SourceMessageID,
		&c.UserID,
		&c.Type,
		&c.Title,
		&c.Module,
		&c.DueDate,
		&c.Location,
		&c.Confidence,
		&c.ConfidenceScore,
		&extraction,
		&c.Links,
		&attachments,
		&c.Status,
		&c.ThreadID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.ExtractionInfo = extraction
	c.Attachments = attachments
	return &c, nil
}

func collectCandidates(rows pgx.Rows) ([]domain.TaskCandidate, error) {
	var candidates []domain.TaskCandidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, domain.PersistenceError("scan candidate", err)
		}
		candidates = append(candidates, *candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError("iterate candidates", err)
	}
	return candidates, nil
}
