// Package profile manages the app-local mirror of identity-provider accounts.
package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (uc *UseCase) UpdateEmail(ctx context.Context, userID, email string) (*domain.UserProfile, error) {
	return uc.users.UpdateEmail(ctx, userID, email)
}

// Provision creates the profile row at signup time, driven by the identity
// provider's webhook. Re-provisioning an existing id refreshes the email.
func (uc *UseCase) Provision(ctx context.Context, identity domain.Identity) (*domain.UserProfile, error) {
	profile, err := uc.users.Create(ctx, &domain.UserProfile{
		ID:    identity.ID,
		Email: identity.Email,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user profile provisioned", zap.String("user_id", identity.ID))
	return profile, nil
}

// Delete hard-deletes the profile. Cascade over dependent rows is a store
// concern, not handled here.
func (uc *UseCase) Delete(ctx context.Context, userID string) error {
	return uc.users.Delete(ctx, userID)
}
