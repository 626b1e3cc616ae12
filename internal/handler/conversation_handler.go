package handler

import (
	"github.com/gofiber/fiber/v2"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/service/messaging"
)

type ConversationHandler struct {
	messagingService messaging.Service
}

func NewConversationHandler(messagingService messaging.Service) *ConversationHandler {
	return &ConversationHandler{messagingService: messagingService}
}

// Create is idempotent: the first call for a pair creates the
// conversation, every later call returns the same one.
func (h *ConversationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateConversationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actorID := middleware.GetCurrentUserID(c)
	if actorID != input.UserID && actorID != input.ProviderID {
		return middleware.Forbidden("You must be a party to the conversation")
	}

	detail, err := h.messagingService.FindOrCreate(c.Context(), input.UserID, input.ProviderID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *ConversationHandler) Messages(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	conversationID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.messagingService.GetMessages(c.Context(), conversationID, actorID)
	if err != nil {
		return messagingError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messages": messages,
	})
}

func (h *ConversationHandler) ListAll(c *fiber.Ctx) error {
	partyID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	if partyID != middleware.GetCurrentUserID(c) {
		return middleware.Forbidden("You may only list your own conversations")
	}

	conversations, err := h.messagingService.ListForParty(c.Context(), partyID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"conversations": conversations,
	})
}

func (h *ConversationHandler) Search(c *fiber.Ctx) error {
	partyID := middleware.GetCurrentUserID(c)

	role := domain.MessageSender(c.Query("role"))
	name := c.Query("name")

	conversations, err := h.messagingService.Search(c.Context(), partyID, role, name)
	if err != nil {
		return messagingError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"conversations": conversations,
	})
}

func (h *ConversationHandler) MarkRead(c *fiber.Ctx) error {
	conversationID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	role := domain.MessageSender(c.Query("role"))

	if err := h.messagingService.MarkRead(c.Context(), conversationID, role); err != nil {
		return messagingError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Messages marked as read",
	})
}

func (h *ConversationHandler) UnreadCount(c *fiber.Ctx) error {
	partyID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	if partyID != middleware.GetCurrentUserID(c) {
		return middleware.Forbidden("You may only read your own unread count")
	}

	role := domain.MessageSender(c.Query("role"))

	count, err := h.messagingService.CountUnread(c.Context(), partyID, role)
	if err != nil {
		return messagingError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

func messagingError(err error) error {
	switch err {
	case messaging.ErrConversationNotFound:
		return middleware.NotFound("Conversation not found")
	case messaging.ErrNotParticipant:
		return middleware.Forbidden("You are not a party to this conversation")
	case messaging.ErrInvalidRole, messaging.ErrInvalidSender:
		return middleware.BadRequest("Role must be user or provider")
	case messaging.ErrEmptyContent:
		return middleware.BadRequest("Message content must not be empty")
	}
	return err
}
