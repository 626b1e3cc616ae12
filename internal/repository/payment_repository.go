package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"handypro/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error)
	MarkFailed(ctx context.Context, bookingID uuid.UUID, transactionID string) error
	// CompleteWithBooking marks the payment COMPLETED and the booking
	// COMPLETED in one transaction. Partial state must never commit, and
	// a booking that already left CONFIRMED reports ErrStatusConflict so
	// a stale transaction can never produce a second captured payment.
	CompleteWithBooking(ctx context.Context, bookingID uuid.UUID, transactionID string) error
}

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, status, payment_method, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		payment.ID, payment.BookingID, payment.Amount,
		payment.Status, payment.PaymentMethod, payment.TransactionID,
	).Scan(&payment.CreatedAt)
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `SELECT * FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &payments, query, bookingID)
	return payments, err
}

func (r *paymentRepository) MarkFailed(ctx context.Context, bookingID uuid.UUID, transactionID string) error {
	query := `UPDATE payments SET status = 'FAILED' WHERE booking_id = $1 AND transaction_id = $2 AND status = 'PENDING'`
	_, err := r.db.ExecContext(ctx, query, bookingID, transactionID)
	return err
}

func (r *paymentRepository) CompleteWithBooking(ctx context.Context, bookingID uuid.UUID, transactionID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	bookingQuery := `UPDATE bookings SET status = 'COMPLETED', updated_at = NOW() WHERE id = $1 AND status = 'CONFIRMED'`
	result, err := tx.ExecContext(ctx, bookingQuery, bookingID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStatusConflict
	}

	paymentQuery := `UPDATE payments SET status = 'COMPLETED' WHERE booking_id = $1 AND transaction_id = $2 AND status = 'PENDING'`
	if _, err := tx.ExecContext(ctx, paymentQuery, bookingID, transactionID); err != nil {
		return err
	}

	return tx.Commit()
}
