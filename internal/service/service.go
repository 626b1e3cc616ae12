package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"handypro/internal/config"
	"handypro/internal/repository"
	"handypro/internal/service/auth"
	"handypro/internal/service/booking"
	"handypro/internal/service/catalog"
	"handypro/internal/service/email"
	"handypro/internal/service/media"
	"handypro/internal/service/messaging"
	"handypro/internal/service/notification"
	"handypro/internal/service/payment"
)

type Services struct {
	Auth         auth.Service
	Booking      booking.Service
	Payment      payment.Service
	Messaging    messaging.Service
	Catalog      catalog.Service
	Notification notification.Service
	Email        email.Service
	Media        media.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Provider, repos.Session, emailService, cfg)
	notificationService := notification.NewService(repos.Notification)

	bookingService := booking.NewService(repos.Booking, repos.Service, repos.Review, repos.User, redis, emailService, cfg)
	bookingService.SetNotificationService(notificationService)

	messagingService := messaging.NewService(repos.Conversation, repos.Message)
	messagingService.SetNotificationService(notificationService)

	paymentGateway := payment.NewFlouciGateway(cfg)
	paymentService := payment.NewService(repos.Booking, repos.Payment, paymentGateway, cfg)

	catalogService := catalog.NewService(repos.Service, repos.Provider, redis, cfg)
	mediaService := media.NewService(minioClient, cfg)

	return &Services{
		Auth:         authService,
		Booking:      bookingService,
		Payment:      paymentService,
		Messaging:    messagingService,
		Catalog:      catalogService,
		Notification: notificationService,
		Email:        emailService,
		Media:        mediaService,
	}
}
