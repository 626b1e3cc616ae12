package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the profile row for a user with the provider role.
type Provider struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	City        *string   `json:"city,omitempty" db:"city"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	Rating      float64   `json:"rating" db:"rating"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type UpdateProviderInput struct {
	City        *string `json:"city,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// ProviderSummary is attached to service detail responses.
type ProviderSummary struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	PhotoURL *string   `json:"photo_url,omitempty" db:"photo_url"`
	City     *string   `json:"city,omitempty" db:"city"`
	Rating   float64   `json:"rating" db:"rating"`
}
