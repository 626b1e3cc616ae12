package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
	"handypro/internal/service/notification"
)

type MessagingService struct {
	mock.Mock
}

func (m *MessagingService) FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.ConversationDetail, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversationDetail), args.Error(1)
}

func (m *MessagingService) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MessagingService) ListForParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationDetail), args.Error(1)
}

func (m *MessagingService) Search(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error) {
	args := m.Called(ctx, partyID, role, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationDetail), args.Error(1)
}

func (m *MessagingService) GetMessages(ctx context.Context, conversationID, actorID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MessagingService) Send(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender, content string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, sender, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessagingService) MarkRead(ctx context.Context, conversationID uuid.UUID, reader domain.MessageSender) error {
	args := m.Called(ctx, conversationID, reader)
	return args.Error(0)
}

func (m *MessagingService) CountUnread(ctx context.Context, partyID uuid.UUID, role domain.MessageSender) (int64, error) {
	args := m.Called(ctx, partyID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessagingService) SetNotificationService(notifSvc notification.Service) {
	m.Called(notifSvc)
}
