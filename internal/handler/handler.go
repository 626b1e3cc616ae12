package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/realtime"
	"handypro/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Provider     *ProviderHandler
	Payment      *PaymentHandler
	Conversation *ConversationHandler
	Notification *NotificationHandler
	Media        *MediaHandler
	Websocket    *WebsocketHandler
}

func NewHandlers(services *service.Services, hub *realtime.Hub) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Catalog:      NewCatalogHandler(services.Catalog),
		Booking:      NewBookingHandler(services.Booking),
		Provider:     NewProviderHandler(services.Booking, services.Catalog),
		Payment:      NewPaymentHandler(services.Payment),
		Conversation: NewConversationHandler(services.Messaging),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
		Websocket:    NewWebsocketHandler(services.Auth, hub),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	params.Validate()
	return params
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}
