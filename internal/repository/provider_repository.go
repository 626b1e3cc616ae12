package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"handypro/internal/domain"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Provider, error)
	Update(ctx context.Context, provider *domain.Provider) error
	SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error
}

type providerRepository struct {
	db *sqlx.DB
}

func NewProviderRepository(db *sqlx.DB) ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *domain.Provider) error {
	query := `
		INSERT INTO providers (id, user_id, city, bio, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		provider.ID, provider.UserID, provider.City, provider.Bio, provider.IsAvailable,
	).Scan(&provider.CreatedAt)
}

func (r *providerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Provider, error) {
	var provider domain.Provider
	query := `SELECT * FROM providers WHERE user_id = $1`

	err := r.db.GetContext(ctx, &provider, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) Update(ctx context.Context, provider *domain.Provider) error {
	query := `
		UPDATE providers
		SET city = :city, bio = :bio, is_available = :is_available
		WHERE user_id = :user_id`

	_, err := r.db.NamedExecContext(ctx, query, provider)
	return err
}

func (r *providerRepository) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	query := `UPDATE providers SET is_available = $2 WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, available)
	return err
}
