package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/service/booking"
	"handypro/internal/service/catalog"
)

// ProviderHandler serves the provider workspace: the request inbox,
// booking decisions, the dashboard summary and service management.
type ProviderHandler struct {
	bookingService booking.Service
	catalogService catalog.Service
}

func NewProviderHandler(bookingService booking.Service, catalogService catalog.Service) *ProviderHandler {
	return &ProviderHandler{
		bookingService: bookingService,
		catalogService: catalogService,
	}
}

func (h *ProviderHandler) Requests(c *fiber.Ctx) error {
	providerID := middleware.GetCurrentUserID(c)

	bookings, err := h.bookingService.ListRequests(c.Context(), providerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *ProviderHandler) History(c *fiber.Ctx) error {
	providerID := middleware.GetCurrentUserID(c)

	bookings, err := h.bookingService.History(c.Context(), providerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *ProviderHandler) Summary(c *fiber.Ctx) error {
	providerID := middleware.GetCurrentUserID(c)

	stats, err := h.bookingService.Stats(c.Context(), providerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ProviderHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, domain.BookingConfirmed)
}

func (h *ProviderHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, domain.BookingRejected)
}

func (h *ProviderHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, domain.BookingCompleted)
}

func (h *ProviderHandler) transition(c *fiber.Ctx, target domain.BookingStatus) error {
	providerID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	updated, err := h.bookingService.Transition(c.Context(), bookingID, providerID, domain.RoleProvider, target)
	if err != nil {
		return transitionError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ProviderHandler) CreateService(c *fiber.Ctx) error {
	providerID := middleware.GetCurrentUserID(c)

	var svc domain.Service
	if err := c.BodyParser(&svc); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if svc.Name == "" || svc.Price <= 0 || svc.CategoryID == uuid.Nil {
		return middleware.BadRequest("Name, category_id and a positive price are required")
	}

	if err := h.catalogService.CreateService(c.Context(), providerID, &svc); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *ProviderHandler) SetAvailability(c *fiber.Ctx) error {
	providerID := middleware.GetCurrentUserID(c)

	var input struct {
		Available bool `json:"available"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.catalogService.SetAvailability(c.Context(), providerID, input.Available); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"available": input.Available,
	})
}
