package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"handypro/internal/service/messaging"
)

// Hub owns the room registry: conversation id to the set of live
// connections subscribed to it. The registry is derived state, rebuilt
// empty on restart; the message table stays authoritative.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]struct{}

	msgSvc messaging.Service
}

func NewHub(msgSvc messaging.Service) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		msgSvc: msgSvc,
	}
}

// Unregister drops the client from its room and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	h.removeFromRoomLocked(c)
	h.mu.Unlock()
	close(c.send)
}

// join subscribes the client to a conversation. A connection sits in at
// most one room, so joining implicitly leaves the previous one.
func (h *Hub) join(c *Client, conversationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomLocked(c)

	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[conversationID] = room
	}
	room[c] = struct{}{}
	c.conversation = conversationID
}

func (h *Hub) removeFromRoomLocked(c *Client) {
	if c.conversation == uuid.Nil {
		return
	}
	if room, ok := h.rooms[c.conversation]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.conversation)
		}
	}
	c.conversation = uuid.Nil
}

// broadcast delivers to every connection in the room, including the
// sender's own other open connections. Slow consumers are skipped.
func (h *Hub) broadcast(conversationID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[conversationID] {
		select {
		case client.send <- payload:
		default:
			log.Printf("dropping event for slow websocket client %s", client.UserID)
		}
	}
}

func (h *Hub) sendTo(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) sendError(c *Client, message string) {
	payload, err := encodeEvent(EventMessageError, errorPayload{Message: message})
	if err != nil {
		return
	}
	h.sendTo(c, payload)
}

// HandleEvent dispatches one inbound frame.
func (h *Hub) HandleEvent(ctx context.Context, c *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		h.sendError(c, "malformed event")
		return
	}

	switch event.Event {
	case EventJoinConversation:
		h.handleJoin(ctx, c, event.Data)
	case EventSendMessage:
		h.handleSend(ctx, c, event.Data)
	case EventMessagesRead:
		h.handleRead(ctx, c, event.Data)
	default:
		h.sendError(c, "unknown event: "+event.Event)
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == uuid.Nil {
		h.sendError(c, "conversationId is required")
		return
	}

	conv, err := h.msgSvc.GetConversation(ctx, payload.ConversationID)
	if err != nil {
		h.sendError(c, "conversation not found")
		return
	}
	if !conv.HasParticipant(c.UserID) {
		h.sendError(c, "not a participant of this conversation")
		return
	}

	h.join(c, payload.ConversationID)
}

func (h *Hub) handleSend(ctx context.Context, c *Client, data json.RawMessage) {
	var payload sendPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(c, "malformed sendMessage payload")
		return
	}

	if !h.isJoined(c, payload.ConversationID) {
		h.sendError(c, "join the conversation before sending")
		return
	}
	if payload.Sender != c.Role {
		h.sendError(c, "sender does not match connection role")
		return
	}

	// Persist first; a failed write must never be broadcast.
	message, err := h.msgSvc.Send(ctx, payload.ConversationID, payload.Sender, payload.Content)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	out, err := encodeEvent(EventNewMessage, message)
	if err != nil {
		h.sendError(c, "failed to encode message")
		return
	}
	h.broadcast(payload.ConversationID, out)
}

func (h *Hub) handleRead(ctx context.Context, c *Client, data json.RawMessage) {
	var payload readPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(c, "malformed messagesRead payload")
		return
	}

	if !h.isJoined(c, payload.ConversationID) {
		h.sendError(c, "join the conversation before marking read")
		return
	}

	if err := h.msgSvc.MarkRead(ctx, payload.ConversationID, payload.Role); err != nil {
		h.sendError(c, err.Error())
		return
	}

	out, err := encodeEvent(EventMessagesRead, payload)
	if err != nil {
		return
	}
	h.broadcast(payload.ConversationID, out)
}

func (h *Hub) isJoined(c *Client, conversationID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.conversation == conversationID && conversationID != uuid.Nil
}
