package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"handypro/internal/domain"
)

// ErrStatusConflict surfaces a status update that found the booking in a
// different state than the caller observed.
var ErrStatusConflict = errors.New("booking status changed concurrently")

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, statuses []domain.BookingStatus) ([]domain.BookingDetail, error)
	// UpdateStatus moves the booking to status only if it is still in
	// expected, and reports ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, status, expected domain.BookingStatus) error
	StatsForProvider(ctx context.Context, providerID uuid.UUID) (*domain.ProviderStats, error)
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, provider_id, service_id, booking_date, status, total_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		booking.ID, booking.UserID, booking.ProviderID, booking.ServiceID,
		booking.BookingDate, booking.Status, booking.TotalPrice, booking.Notes,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	query := `SELECT * FROM bookings WHERE id = $1`

	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

type bookingDetailRow struct {
	domain.Booking
	ServiceName      string  `db:"service_name"`
	ServicePrice     float64 `db:"service_price"`
	ServiceImageURL  *string `db:"service_image_url"`
	ProviderUsername string  `db:"provider_username"`
	ProviderPhotoURL *string `db:"provider_photo_url"`
	UserUsername     string  `db:"user_username"`
	UserPhotoURL     *string `db:"user_photo_url"`
}

func (row bookingDetailRow) toDetail() domain.BookingDetail {
	return domain.BookingDetail{
		Booking: row.Booking,
		Service: domain.ServiceSummary{
			ID:       row.ServiceID,
			Name:     row.ServiceName,
			Price:    row.ServicePrice,
			ImageURL: row.ServiceImageURL,
		},
		Provider: domain.UserSummary{
			ID:       row.ProviderID,
			Username: row.ProviderUsername,
			PhotoURL: row.ProviderPhotoURL,
		},
		User: domain.UserSummary{
			ID:       row.UserID,
			Username: row.UserUsername,
			PhotoURL: row.UserPhotoURL,
		},
	}
}

const bookingDetailQuery = `
	SELECT b.*,
		s.name AS service_name,
		s.price AS service_price,
		s.image_url AS service_image_url,
		pu.username AS provider_username,
		pu.photo_url AS provider_photo_url,
		cu.username AS user_username,
		cu.photo_url AS user_photo_url
	FROM bookings b
	JOIN services s ON s.id = b.service_id
	JOIN users pu ON pu.id = b.provider_id
	JOIN users cu ON cu.id = b.user_id`

func (r *bookingRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	var row bookingDetailRow
	query := bookingDetailQuery + ` WHERE b.id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	detail := row.toDetail()
	return &detail, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	var rows []bookingDetailRow
	query := bookingDetailQuery + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	details := make([]domain.BookingDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

func (r *bookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, statuses []domain.BookingStatus) ([]domain.BookingDetail, error) {
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	var rows []bookingDetailRow
	query := bookingDetailQuery + ` WHERE b.provider_id = $1 AND b.status = ANY($2) ORDER BY b.booking_date ASC`

	if err := r.db.SelectContext(ctx, &rows, query, providerID, pq.Array(statusStrings)); err != nil {
		return nil, err
	}

	details := make([]domain.BookingDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, expected domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, id, status, expected)
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
	return nil
}

func (r *bookingRepository) StatsForProvider(ctx context.Context, providerID uuid.UUID) (*domain.ProviderStats, error) {
	var stats domain.ProviderStats
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled,
			COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected,
			COALESCE((
				SELECT SUM(p.amount)
				FROM payments p
				JOIN bookings pb ON pb.id = p.booking_id
				WHERE pb.provider_id = $1 AND p.status = 'COMPLETED'
			), 0) AS revenue
		FROM bookings
		WHERE provider_id = $1`

	err := r.db.QueryRowxContext(ctx, query, providerID).Scan(
		&stats.Pending, &stats.Confirmed, &stats.Completed,
		&stats.Cancelled, &stats.Rejected, &stats.Revenue,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
