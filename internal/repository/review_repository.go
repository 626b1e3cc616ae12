package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"handypro/internal/domain"
)

// ErrDuplicateReview surfaces the unique booking_id constraint.
var ErrDuplicateReview = errors.New("booking already reviewed")

type ReviewRepository interface {
	// CreateAndRecompute inserts the review and recomputes the service
	// and provider aggregate ratings from all stored reviews, in one
	// transaction.
	CreateAndRecompute(ctx context.Context, review *domain.Review, providerID uuid.UUID) error
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]domain.Review, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateAndRecompute(ctx context.Context, review *domain.Review, providerID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO reviews (id, booking_id, service_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = tx.QueryRowxContext(ctx, insertQuery,
		review.ID, review.BookingID, review.ServiceID, review.UserID,
		review.Rating, review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return err
	}

	serviceQuery := `
		UPDATE services
		SET rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE service_id = $1)
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, serviceQuery, review.ServiceID); err != nil {
		return err
	}

	providerQuery := `
		UPDATE providers
		SET rating = (
			SELECT COALESCE(AVG(rv.rating), 0)
			FROM reviews rv
			JOIN services s ON s.id = rv.service_id
			WHERE s.provider_id = $1
		)
		WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, providerQuery, providerID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE booking_id = $1)`
	err := r.db.GetContext(ctx, &exists, query, bookingID)
	return exists, err
}

func (r *reviewRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := `SELECT * FROM reviews WHERE service_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reviews, query, serviceID)
	return reviews, err
}
