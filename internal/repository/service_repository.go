package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"handypro/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	List(ctx context.Context, filter domain.ServiceFilter, params domain.PaginationParams) ([]domain.Service, int64, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	query := `
		INSERT INTO services (id, provider_id, category_id, name, description, price, duration_minutes, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		svc.ID, svc.ProviderID, svc.CategoryID, svc.Name, svc.Description,
		svc.Price, svc.DurationMinutes, svc.ImageURL, svc.IsActive,
	).Scan(&svc.CreatedAt)
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var svc domain.Service
	query := `SELECT * FROM services WHERE id = $1 AND is_active`

	err := r.db.GetContext(ctx, &svc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

type serviceDetailRow struct {
	domain.Service
	ProviderUsername string  `db:"provider_username"`
	ProviderPhotoURL *string `db:"provider_photo_url"`
	ProviderCity     *string `db:"provider_city"`
	ProviderRating   float64 `db:"provider_rating"`
}

func (r *serviceRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	var row serviceDetailRow
	query := `
		SELECT s.*,
			u.username AS provider_username,
			u.photo_url AS provider_photo_url,
			p.city AS provider_city,
			p.rating AS provider_rating
		FROM services s
		JOIN users u ON u.id = s.provider_id
		JOIN providers p ON p.user_id = s.provider_id
		WHERE s.id = $1 AND s.is_active`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reviews []domain.Review
	reviewQuery := `
		SELECT * FROM reviews
		WHERE service_id = $1
		ORDER BY created_at DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &reviews, reviewQuery, id); err != nil {
		return nil, err
	}

	return &domain.ServiceDetail{
		Service: row.Service,
		Provider: domain.ProviderSummary{
			ID:       row.ProviderID,
			Username: row.ProviderUsername,
			PhotoURL: row.ProviderPhotoURL,
			City:     row.ProviderCity,
			Rating:   row.ProviderRating,
		},
		Reviews: reviews,
	}, nil
}

func (r *serviceRepository) List(ctx context.Context, filter domain.ServiceFilter, params domain.PaginationParams) ([]domain.Service, int64, error) {
	params.Validate()

	where := ` WHERE s.is_active`
	args := []interface{}{}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(` AND s.category_id = $%d`, len(args))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM providers p WHERE p.user_id = s.provider_id AND p.city = $%d)`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM services s` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.* FROM services s` + where +
		fmt.Sprintf(` ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var services []domain.Service
	err := r.db.SelectContext(ctx, &services, query, args...)
	return services, total, err
}

func (r *serviceRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	query := `SELECT * FROM categories ORDER BY name`
	err := r.db.SelectContext(ctx, &categories, query)
	return categories, err
}
