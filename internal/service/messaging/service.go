package messaging

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/repository"
	"handypro/internal/service/notification"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("actor is not a party to this conversation")
	ErrEmptyContent         = errors.New("message content must not be empty")
	ErrInvalidSender        = errors.New("sender must be user or provider")
	ErrInvalidRole          = errors.New("role must be user or provider")
)

type Service interface {
	// FindOrCreate returns the single conversation for the pair,
	// creating it lazily on first contact.
	FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.ConversationDetail, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListForParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error)
	Search(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error)
	GetMessages(ctx context.Context, conversationID, actorID uuid.UUID) ([]domain.Message, error)
	// Send persists the message with isRead false. Broadcasting to live
	// connections is the hub's job and must only happen after this
	// returns nil.
	Send(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender, content string) (*domain.Message, error)
	// MarkRead flips every message addressed to the reader, that is,
	// every message sent by the opposite role.
	MarkRead(ctx context.Context, conversationID uuid.UUID, reader domain.MessageSender) error
	CountUnread(ctx context.Context, partyID uuid.UUID, role domain.MessageSender) (int64, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	notifSvc    notification.Service
}

func NewService(convRepo repository.ConversationRepository, messageRepo repository.MessageRepository) Service {
	return &service{
		convRepo:    convRepo,
		messageRepo: messageRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.ConversationDetail, error) {
	conv, _, err := s.convRepo.FindOrCreate(ctx, userID, providerID)
	if err != nil {
		return nil, err
	}

	detail, err := s.convRepo.GetDetail(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrConversationNotFound
	}
	return detail, nil
}

func (s *service) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (s *service) ListForParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error) {
	return s.convRepo.ListByParty(ctx, partyID)
}

func (s *service) Search(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return s.convRepo.SearchByCounterpartName(ctx, partyID, role, name)
}

func (s *service) GetMessages(ctx context.Context, conversationID, actorID uuid.UUID) ([]domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(actorID) {
		return nil, ErrNotParticipant
	}
	return s.messageRepo.ListByConversation(ctx, conversationID)
}

func (s *service) Send(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender, content string) (*domain.Message, error) {
	if !sender.IsValid() {
		return nil, ErrInvalidSender
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	message := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
		IsRead:         false,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.notifyRecipient(conv, sender)

	return message, nil
}

// notifyRecipient drops a notification row for the other side so the
// badge survives when they have no live connection. Best-effort.
func (s *service) notifyRecipient(conv *domain.Conversation, sender domain.MessageSender) {
	if s.notifSvc == nil {
		return
	}

	recipientID := conv.UserID
	if sender == domain.SenderUser {
		recipientID = conv.ProviderID
	}

	go func() {
		detail, err := s.convRepo.GetDetail(context.Background(), conv.ID)
		if err != nil || detail == nil {
			return
		}
		senderName := detail.User.Username
		if sender == domain.SenderProvider {
			senderName = detail.Provider.Username
		}
		_ = s.notifSvc.NotifyNewMessage(context.Background(), recipientID, senderName)
	}()
}

func (s *service) MarkRead(ctx context.Context, conversationID uuid.UUID, reader domain.MessageSender) error {
	if !reader.IsValid() {
		return ErrInvalidRole
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversationNotFound
	}

	return s.messageRepo.MarkRead(ctx, conversationID, reader.Opposite())
}

func (s *service) CountUnread(ctx context.Context, partyID uuid.UUID, role domain.MessageSender) (int64, error) {
	if !role.IsValid() {
		return 0, ErrInvalidRole
	}
	return s.messageRepo.CountUnreadForParty(ctx, partyID, role.Opposite())
}
