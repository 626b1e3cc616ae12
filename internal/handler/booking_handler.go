package handler

import (
	"github.com/gofiber/fiber/v2"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/service/booking"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewBookingHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	detail, err := h.bookingService.Create(c.Context(), userID, input)
	if err != nil {
		switch err {
		case booking.ErrServiceNotFound:
			return middleware.NotFound("Service not found")
		case booking.ErrPastDate:
			return middleware.BadRequest("Booking date must be in the future")
		case booking.ErrOutsideHours:
			return middleware.BadRequest("Booking date is outside service hours")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookings, err := h.bookingService.ListForUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"bookings": bookings,
	})
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.bookingService.GetDetail(c.Context(), bookingID, userID)
	if err != nil {
		switch err {
		case booking.ErrBookingNotFound:
			return middleware.NotFound("Booking not found")
		case booking.ErrNotAllowed:
			return middleware.Forbidden("You are not a party to this booking")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookingID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	updated, err := h.bookingService.Transition(c.Context(), bookingID, currentUser.ID, domain.UserRole(currentUser.Role), domain.BookingCancelled)
	if err != nil {
		return transitionError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *BookingHandler) Review(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.SubmitReviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	review, err := h.bookingService.SubmitReview(c.Context(), bookingID, userID, input)
	if err != nil {
		switch err {
		case booking.ErrBookingNotFound:
			return middleware.NotFound("Booking not found")
		case booking.ErrNotAllowed:
			return middleware.Forbidden("Only the booking's customer may review it")
		case booking.ErrNotCompleted:
			return middleware.BadRequest("Only completed bookings can be reviewed")
		case booking.ErrInvalidRating:
			return middleware.BadRequest("Rating must be an integer between 1 and 5")
		case booking.ErrAlreadyReviewed:
			return middleware.Conflict("Booking already reviewed")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func transitionError(err error) error {
	switch err {
	case booking.ErrBookingNotFound:
		return middleware.NotFound("Booking not found")
	case booking.ErrNotAllowed:
		return middleware.Forbidden("You are not allowed to perform this action")
	case booking.ErrInvalidTransition:
		return middleware.Conflict("Status transition not permitted from current state")
	case booking.ErrCancellationNotice:
		return middleware.Conflict("Too late to cancel a confirmed booking")
	}
	return err
}
