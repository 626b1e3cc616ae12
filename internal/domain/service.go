package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IconURL     *string   `json:"icon_url,omitempty" db:"icon_url"`
}

type Service struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProviderID      uuid.UUID `json:"provider_id" db:"provider_id"`
	CategoryID      uuid.UUID `json:"category_id" db:"category_id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Price           float64   `json:"price" db:"price"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	ImageURL        *string   `json:"image_url,omitempty" db:"image_url"`
	Rating          float64   `json:"rating" db:"rating"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ServiceDetail joins the provider summary and recent reviews onto a service.
type ServiceDetail struct {
	Service
	Provider ProviderSummary `json:"provider"`
	Reviews  []Review        `json:"reviews"`
}

type ServiceSummary struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Price    float64   `json:"price" db:"price"`
	ImageURL *string   `json:"image_url,omitempty" db:"image_url"`
}

type ServiceFilter struct {
	CategoryID *uuid.UUID `json:"category_id" query:"category_id"`
	City       *string    `json:"city" query:"city"`
}
