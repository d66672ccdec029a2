package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/studentos/backend/repository"
)

// pgRow is satisfied by both pgx.Row and pgx.Rows.
type pgRow interface {
	Scan(dest ...interface{}) error
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// capLimit bounds an explicit page size to repository.MaxPageSize. Zero and
// negative limits come back as zero: the query runs without a LIMIT clause.
func capLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > repository.MaxPageSize {
		return repository.MaxPageSize
	}
	return limit
}
