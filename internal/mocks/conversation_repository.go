package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
)

type ConversationRepository struct {
	mock.Mock
}

func (m *ConversationRepository) FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.Conversation, bool, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Conversation), args.Bool(1), args.Error(2)
}

func (m *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *ConversationRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ConversationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversationDetail), args.Error(1)
}

func (m *ConversationRepository) ListByParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationDetail), args.Error(1)
}

func (m *ConversationRepository) SearchByCounterpartName(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error) {
	args := m.Called(ctx, partyID, role, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationDetail), args.Error(1)
}
