package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

type sourceMessageRepository struct {
	pool *pgxpool.Pool
}

// NewSourceMessageRepository returns a Postgres-backed SourceMessageRepository.
func NewSourceMessageRepository(pool *pgxpool.Pool) repository.SourceMessageRepository {
	return &sourceMessageRepository{pool: pool}
}

func (r *sourceMessageRepository) GetSnippet(ctx context.Context, id string) (*domain.SourceMessage, error) {
	const query = `
	SELECT subject, from_name, from_email, received_at, body_snippet, urls
	FROM source_messages
	WHERE id = $1
	`
	var msg domain.SourceMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.Subject,
		&msg.FromName,
		&msg.FromEmail,
		&msg.ReceivedAt,
		&msg.BodySnippet,
		&msg.URLs,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.PersistenceError("fetch source message", err)
	}
	return &msg, nil
}
