package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"handypro/internal/domain"
	"handypro/internal/mocks"
	"handypro/internal/service/messaging"
)

type messagingFixture struct {
	convRepo    *mocks.ConversationRepository
	messageRepo *mocks.MessageRepository
	notifSvc    *mocks.NotificationService
	svc         messaging.Service
}

func newMessagingFixture() *messagingFixture {
	f := &messagingFixture{
		convRepo:    new(mocks.ConversationRepository),
		messageRepo: new(mocks.MessageRepository),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = messaging.NewService(f.convRepo, f.messageRepo)
	f.svc.SetNotificationService(f.notifSvc)
	return f
}

func conversationRow(userID, providerID uuid.UUID) *domain.Conversation {
	return &domain.Conversation{
		ID:         uuid.New(),
		UserID:     userID,
		ProviderID: providerID,
		CreatedAt:  time.Now(),
	}
}

func TestMessagingService_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()

	t.Run("returns the pair's single conversation", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("FindOrCreate", ctx, userID, providerID).Return(conv, true, nil).Once()
		f.convRepo.On("GetDetail", ctx, conv.ID).Return(&domain.ConversationDetail{
			Conversation: *conv,
			User:         domain.UserSummary{ID: userID, Username: "alice"},
			Provider:     domain.UserSummary{ID: providerID, Username: "bob"},
		}, nil).Once()

		detail, err := f.svc.FindOrCreate(ctx, userID, providerID)

		assert.NoError(t, err)
		assert.Equal(t, conv.ID, detail.ID)
		assert.Equal(t, "alice", detail.User.Username)
		f.convRepo.AssertExpectations(t)
	})
}

func TestMessagingService_Send(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()

	t.Run("persists unread and notifies the other side", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()
		f.messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.ConversationID == conv.ID &&
				m.Sender == domain.SenderUser &&
				m.Content == "hello" &&
				!m.IsRead
		})).Return(nil).Once()
		f.convRepo.On("GetDetail", mock.Anything, conv.ID).Return(&domain.ConversationDetail{
			Conversation: *conv,
			User:         domain.UserSummary{ID: userID, Username: "alice"},
			Provider:     domain.UserSummary{ID: providerID, Username: "bob"},
		}, nil).Maybe()
		f.notifSvc.On("NotifyNewMessage", mock.Anything, providerID, "alice").Return(nil).Maybe()

		message, err := f.svc.Send(ctx, conv.ID, domain.SenderUser, "hello")

		assert.NoError(t, err)
		assert.False(t, message.IsRead)

		time.Sleep(50 * time.Millisecond)
		f.messageRepo.AssertExpectations(t)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		f := newMessagingFixture()

		_, err := f.svc.Send(ctx, uuid.New(), domain.SenderUser, "   ")

		assert.ErrorIs(t, err, messaging.ErrEmptyContent)
	})

	t.Run("rejects an unknown sender role", func(t *testing.T) {
		f := newMessagingFixture()

		_, err := f.svc.Send(ctx, uuid.New(), domain.MessageSender("admin"), "hi")

		assert.ErrorIs(t, err, messaging.ErrInvalidSender)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		f := newMessagingFixture()
		id := uuid.New()

		f.convRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.Send(ctx, id, domain.SenderUser, "hi")

		assert.ErrorIs(t, err, messaging.ErrConversationNotFound)
	})
}

func TestMessagingService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()

	t.Run("flips messages sent by the opposite side", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()
		// The user reads, so provider messages flip.
		f.messageRepo.On("MarkRead", ctx, conv.ID, domain.SenderProvider).Return(nil).Once()

		err := f.svc.MarkRead(ctx, conv.ID, domain.SenderUser)

		assert.NoError(t, err)
		f.messageRepo.AssertExpectations(t)
	})

	t.Run("provider reading flips user messages", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()
		f.messageRepo.On("MarkRead", ctx, conv.ID, domain.SenderUser).Return(nil).Once()

		err := f.svc.MarkRead(ctx, conv.ID, domain.SenderProvider)

		assert.NoError(t, err)
		f.messageRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		f := newMessagingFixture()

		err := f.svc.MarkRead(ctx, uuid.New(), domain.MessageSender("moderator"))

		assert.ErrorIs(t, err, messaging.ErrInvalidRole)
	})
}

func TestMessagingService_CountUnread(t *testing.T) {
	ctx := context.Background()
	partyID := uuid.New()

	t.Run("counts messages addressed to the party", func(t *testing.T) {
		f := newMessagingFixture()

		// A user's unread messages are the ones providers sent.
		f.messageRepo.On("CountUnreadForParty", ctx, partyID, domain.SenderProvider).Return(int64(3), nil).Once()

		count, err := f.svc.CountUnread(ctx, partyID, domain.SenderUser)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		f.messageRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		f := newMessagingFixture()

		_, err := f.svc.CountUnread(ctx, partyID, domain.MessageSender(""))

		assert.ErrorIs(t, err, messaging.ErrInvalidRole)
	})
}

func TestMessagingService_GetMessages(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()

	t.Run("participants see the history", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()
		f.messageRepo.On("ListByConversation", ctx, conv.ID).Return([]domain.Message{
			{ID: uuid.New(), ConversationID: conv.ID, Sender: domain.SenderUser, Content: "hi"},
		}, nil).Once()

		messages, err := f.svc.GetMessages(ctx, conv.ID, userID)

		assert.NoError(t, err)
		assert.Len(t, messages, 1)
	})

	t.Run("outsiders are refused", func(t *testing.T) {
		f := newMessagingFixture()
		conv := conversationRow(userID, providerID)

		f.convRepo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()

		_, err := f.svc.GetMessages(ctx, conv.ID, uuid.New())

		assert.ErrorIs(t, err, messaging.ErrNotParticipant)
	})
}
