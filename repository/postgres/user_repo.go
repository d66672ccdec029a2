package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed UserRepository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile == nil || profile.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO user_profiles (id, email)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = NOW()
	RETURNING id, email, created_at, updated_at
	`
	created, err := scanProfile(r.pool.QueryRow(ctx, query, profile.ID, profile.Email))
	if err != nil {
		return nil, domain.PersistenceError("create user profile", err)
	}
	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	const query = `
	SELECT id, email, created_at, updated_at
	FROM user_profiles
	WHERE id = $1
	`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.PersistenceError("fetch user profile", err)
	}
	return profile, nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, id, email string) (*domain.UserProfile, error) {
	const query = `
	UPDATE user_profiles
	SET email = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING id, email, created_at, updated_at
	`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.PersistenceError("update user profile", err)
	}
	return profile, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM user_profiles WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return domain.PersistenceError("delete user profile", err)
	}
	return nil
}

func scanProfile(row pgRow) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := row.Scan(&p.ID, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
