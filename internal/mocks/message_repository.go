package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender) error {
	args := m.Called(ctx, conversationID, sender)
	return args.Error(0)
}

func (m *MessageRepository) CountUnreadForParty(ctx context.Context, partyID uuid.UUID, sender domain.MessageSender) (int64, error) {
	args := m.Called(ctx, partyID, sender)
	return args.Get(0).(int64), args.Error(1)
}
