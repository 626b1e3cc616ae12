package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *BookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, statuses []domain.BookingStatus) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, providerID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, expected domain.BookingStatus) error {
	args := m.Called(ctx, id, status, expected)
	return args.Error(0)
}

func (m *BookingRepository) StatsForProvider(ctx context.Context, providerID uuid.UUID) (*domain.ProviderStats, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderStats), args.Error(1)
}
