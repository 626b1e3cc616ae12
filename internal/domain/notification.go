package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotifBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotifBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotifBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotifBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotifNewMessage       NotificationType = "NEW_MESSAGE"
)
