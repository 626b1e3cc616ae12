package realtime

import (
	"context"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"handypro/internal/domain"
)

const sendBufferSize = 64

// Client is one live websocket connection. A user with several devices
// holds several clients; each can sit in at most one conversation room.
type Client struct {
	UserID uuid.UUID
	Role   domain.MessageSender

	conn *websocket.Conn
	send chan []byte

	// Guarded by the hub's mutex.
	conversation uuid.UUID
}

func NewClient(userID uuid.UUID, role domain.MessageSender, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// ReadPump consumes inbound events until the connection drops. Runs on
// the connection's handler goroutine.
func (c *Client) ReadPump(ctx context.Context, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error for %s: %v", c.UserID, err)
			}
			return
		}
		hub.HandleEvent(ctx, c, raw)
	}
}

// WritePump drains the send channel into the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
