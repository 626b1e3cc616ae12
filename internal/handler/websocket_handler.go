package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"handypro/internal/domain"
	"handypro/internal/middleware"
	"handypro/internal/realtime"
	"handypro/internal/service/auth"
)

// WebsocketHandler upgrades chat connections. Browsers cannot set an
// Authorization header on the upgrade request, so the access token
// travels as a query parameter.
type WebsocketHandler struct {
	authService auth.Service
	hub         *realtime.Hub
}

func NewWebsocketHandler(authService auth.Service, hub *realtime.Hub) *WebsocketHandler {
	return &WebsocketHandler{
		authService: authService,
		hub:         hub,
	}
}

// Authenticate runs as plain fiber middleware before the upgrade.
func (h *WebsocketHandler) Authenticate(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return middleware.Unauthorized("Token is required")
	}

	claims, err := h.authService.ValidateAccessToken(token)
	if err != nil {
		return middleware.Unauthorized("Invalid token")
	}

	user, err := h.authService.GetUserByID(c.Context(), claims.UserID)
	if err != nil || user == nil || !user.IsActive {
		return middleware.Unauthorized("User not found")
	}

	c.Locals("ws_user_id", user.ID)
	c.Locals("ws_role", senderForRole(user.Role))
	return c.Next()
}

// Serve owns the connection for its lifetime.
func (h *WebsocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}
		role, ok := conn.Locals("ws_role").(domain.MessageSender)
		if !ok {
			conn.Close()
			return
		}

		client := realtime.NewClient(userID, role, conn)
		go client.WritePump()
		client.ReadPump(context.Background(), h.hub)
	})
}

func senderForRole(role string) domain.MessageSender {
	if role == string(domain.RoleProvider) {
		return domain.SenderProvider
	}
	return domain.SenderUser
}
