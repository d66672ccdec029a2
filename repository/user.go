package repository

import (
	"context"

	"github.com/studentos/backend/domain"
)

// UserRepository is the accessor for the user_profiles relation. Profile ids
// equal identity-provider user ids, so the id itself is the owner scope.
type UserRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	// GetByID returns (nil, nil) when no profile exists.
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.UserProfile, error)
	// Delete is a hard delete; dependent-record cascade is a store concern.
	Delete(ctx context.Context, id string) error
}
