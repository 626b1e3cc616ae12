package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingRejected, BookingCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCancelled, BookingRejected, BookingCompleted:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	ProviderID  uuid.UUID     `json:"provider_id" db:"provider_id"`
	ServiceID   uuid.UUID     `json:"service_id" db:"service_id"`
	BookingDate time.Time     `json:"booking_date" db:"booking_date"`
	Status      BookingStatus `json:"status" db:"status"`
	TotalPrice  float64       `json:"total_price" db:"total_price"`
	Notes       *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingDetail carries the joined summaries returned by list and get queries.
type BookingDetail struct {
	Booking
	Service  ServiceSummary `json:"service"`
	Provider UserSummary    `json:"provider"`
	User     UserSummary    `json:"user"`
}

type CreateBookingInput struct {
	ServiceID   uuid.UUID `json:"serviceId" validate:"required"`
	BookingDate time.Time `json:"bookingDate" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

type SubmitReviewInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// ProviderStats is the dashboard summary for one provider.
type ProviderStats struct {
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	Rejected  int64   `json:"rejected"`
	Revenue   float64 `json:"revenue"`
}
