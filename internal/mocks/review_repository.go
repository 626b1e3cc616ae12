package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
)

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) CreateAndRecompute(ctx context.Context, review *domain.Review, providerID uuid.UUID) error {
	args := m.Called(ctx, review, providerID)
	return args.Error(0)
}

func (m *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]domain.Review, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}
