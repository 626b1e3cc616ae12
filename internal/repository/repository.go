package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Provider     ProviderRepository
	Service      ServiceRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Review       ReviewRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Notification NotificationRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Provider:     NewProviderRepository(db),
		Service:      NewServiceRepository(db),
		Booking:      NewBookingRepository(db),
		Payment:      NewPaymentRepository(db),
		Review:       NewReviewRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
	}
}
