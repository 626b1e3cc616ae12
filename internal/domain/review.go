package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is linked to exactly one completed booking. The unique index on
// booking_id is what enforces the single-review rule.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookingID uuid.UUID `json:"booking_id" db:"booking_id"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
