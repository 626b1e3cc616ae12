package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
)

type ProviderRepository struct {
	mock.Mock
}

func (m *ProviderRepository) Create(ctx context.Context, provider *domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *ProviderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *ProviderRepository) Update(ctx context.Context, provider *domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *ProviderRepository) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	args := m.Called(ctx, userID, available)
	return args.Error(0)
}
