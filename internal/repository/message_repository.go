package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"handypro/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
	// MarkRead flips is_read on every message in the conversation sent by
	// the given side. Bulk and idempotent.
	MarkRead(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender) error
	// CountUnreadForParty counts unread messages addressed to the party
	// across all of its conversations: sender is the opposing side and
	// is_read is false.
	CountUnreadForParty(ctx context.Context, partyID uuid.UUID, sender domain.MessageSender) (int64, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender, content, is_read)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		message.ID, message.ConversationID, message.Sender, message.Content, message.IsRead,
	).Scan(&message.CreatedAt)
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	query := `SELECT * FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &messages, query, conversationID)
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, sender domain.MessageSender) error {
	query := `UPDATE messages SET is_read = true WHERE conversation_id = $1 AND sender = $2 AND NOT is_read`
	_, err := r.db.ExecContext(ctx, query, conversationID, sender)
	return err
}

func (r *messageRepository) CountUnreadForParty(ctx context.Context, partyID uuid.UUID, sender domain.MessageSender) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.user_id = $1 OR c.provider_id = $1)
			AND m.sender = $2
			AND NOT m.is_read`
	err := r.db.GetContext(ctx, &count, query, partyID, sender)
	return count, err
}
