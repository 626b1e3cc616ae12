package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"handypro/internal/middleware"
	"handypro/internal/service/payment"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "bookingId")
	if err != nil {
		return err
	}

	initiation, err := h.paymentService.Initiate(c.Context(), bookingID, userID)
	if err != nil {
		return paymentError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(initiation)
}

func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "bookingId")
	if err != nil {
		return err
	}

	var input struct {
		PaymentID string `json:"payment_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.PaymentID == "" {
		return middleware.BadRequest("payment_id is required")
	}

	if err := h.paymentService.Verify(c.Context(), bookingID, userID, input.PaymentID); err != nil {
		if err == payment.ErrVerificationFailed {
			return middleware.BadRequest("Payment was not completed")
		}
		return paymentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "COMPLETED",
	})
}

func (h *PaymentHandler) History(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	bookingID, err := paramUUID(c, "bookingId")
	if err != nil {
		return err
	}

	payments, err := h.paymentService.History(c.Context(), bookingID, userID)
	if err != nil {
		return paymentError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"payments": payments,
	})
}

func paymentError(err error) error {
	switch {
	case err == payment.ErrBookingNotFound:
		return middleware.NotFound("Booking not found")
	case err == payment.ErrNotAllowed:
		return middleware.Forbidden("Only the booking's customer may pay")
	case err == payment.ErrNotConfirmed:
		return middleware.Conflict("Payment requires a confirmed booking")
	case errors.Is(err, payment.ErrGateway):
		return middleware.BadGateway("Payment gateway unavailable")
	}
	return err
}
