package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/repository"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	NotifyBookingEvent(ctx context.Context, recipientID uuid.UUID, notifType domain.NotificationType, serviceName, counterpartName string) error
	NotifyNewMessage(ctx context.Context, recipientID uuid.UUID, senderName string) error
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

var bookingEventTitles = map[domain.NotificationType]string{
	domain.NotifBookingRequested: "New booking request",
	domain.NotifBookingConfirmed: "Booking confirmed",
	domain.NotifBookingRejected:  "Booking rejected",
	domain.NotifBookingCancelled: "Booking cancelled",
	domain.NotifBookingCompleted: "Booking completed",
}

func (s *service) NotifyBookingEvent(ctx context.Context, recipientID uuid.UUID, notifType domain.NotificationType, serviceName, counterpartName string) error {
	title, ok := bookingEventTitles[notifType]
	if !ok {
		title = string(notifType)
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipientID,
		Type:    notifType,
		Title:   title,
		Message: fmt.Sprintf("%s: %s (%s)", title, serviceName, counterpartName),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyNewMessage(ctx context.Context, recipientID uuid.UUID, senderName string) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipientID,
		Type:    domain.NotifNewMessage,
		Title:   "New message",
		Message: fmt.Sprintf("You have a new message from %s", senderName),
	}
	return s.notifRepo.Create(ctx, notif)
}
