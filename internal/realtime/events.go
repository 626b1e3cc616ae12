package realtime

import (
	"encoding/json"

	"github.com/google/uuid"

	"handypro/internal/domain"
)

// Wire envelope for both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client to server.
const (
	EventJoinConversation = "joinConversation"
	EventSendMessage      = "sendMessage"
	EventMessagesRead     = "messagesRead"
)

// Server to client.
const (
	EventNewMessage   = "newMessage"
	EventMessageError = "messageError"
)

type joinPayload struct {
	ConversationID uuid.UUID `json:"conversationId"`
}

type sendPayload struct {
	ConversationID uuid.UUID            `json:"conversationId"`
	Sender         domain.MessageSender `json:"sender"`
	Content        string               `json:"content"`
}

type readPayload struct {
	ConversationID uuid.UUID            `json:"conversationId"`
	Role           domain.MessageSender `json:"role"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func encodeEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: raw})
}
