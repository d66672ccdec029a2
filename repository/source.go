package repository

import (
	"context"

	"github.com/studentos/backend/domain"
)

// SourceMessageRepository reads the immutable source-message projection.
// Rows are only reachable through an owned candidate, which is why no owner
// filter appears here; callers must have resolved the candidate first.
type SourceMessageRepository interface {
	// GetSnippet returns (nil, nil) when no row matches id.
	GetSnippet(ctx context.Context, id string) (*domain.SourceMessage, error)
}
