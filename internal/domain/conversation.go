package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageSender identifies which side of the conversation pair sent a
// message, not a user id.
type MessageSender string

const (
	SenderUser     MessageSender = "user"
	SenderProvider MessageSender = "provider"
)

func (s MessageSender) IsValid() bool {
	return s == SenderUser || s == SenderProvider
}

// Opposite returns the other side of the pair.
func (s MessageSender) Opposite() MessageSender {
	if s == SenderUser {
		return SenderProvider
	}
	return SenderUser
}

// Conversation pairs one customer with one provider. At most one row
// exists per pair, enforced by a unique index on (user_id, provider_id).
type Conversation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	ProviderID uuid.UUID `json:"provider_id" db:"provider_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// HasParticipant reports whether the given user id is one of the two parties.
func (c *Conversation) HasParticipant(id uuid.UUID) bool {
	return c.UserID == id || c.ProviderID == id
}

// ConversationDetail joins both party summaries and the latest message.
type ConversationDetail struct {
	Conversation
	User        UserSummary `json:"user"`
	Provider    UserSummary `json:"provider"`
	LastMessage *Message    `json:"last_message,omitempty"`
}

type Message struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	ConversationID uuid.UUID     `json:"conversation_id" db:"conversation_id"`
	Sender         MessageSender `json:"sender" db:"sender"`
	Content        string        `json:"content" db:"content"`
	IsRead         bool          `json:"is_read" db:"is_read"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

type CreateConversationInput struct {
	UserID     uuid.UUID `json:"userId" validate:"required"`
	ProviderID uuid.UUID `json:"providerId" validate:"required"`
}
