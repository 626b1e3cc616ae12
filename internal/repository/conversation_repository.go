package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"handypro/internal/domain"
)

type ConversationRepository interface {
	// FindOrCreate returns the conversation for the pair, creating it if
	// absent. Concurrent calls converge on one row through the unique
	// (user_id, provider_id) index.
	FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.Conversation, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.ConversationDetail, error)
	ListByParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error)
	SearchByCounterpartName(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error)
}

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindOrCreate(ctx context.Context, userID, providerID uuid.UUID) (*domain.Conversation, bool, error) {
	insertQuery := `
		INSERT INTO conversations (id, user_id, provider_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT conversations_pair_key DO NOTHING
		RETURNING id, user_id, provider_id, created_at`

	var conv domain.Conversation
	err := r.db.QueryRowxContext(ctx, insertQuery, uuid.New(), userID, providerID).StructScan(&conv)
	if err == nil {
		return &conv, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	// Lost the race or the pair already existed; fetch the winning row.
	selectQuery := `SELECT * FROM conversations WHERE user_id = $1 AND provider_id = $2`
	if err := r.db.GetContext(ctx, &conv, selectQuery, userID, providerID); err != nil {
		return nil, false, err
	}
	return &conv, false, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`

	err := r.db.GetContext(ctx, &conv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

type conversationDetailRow struct {
	domain.Conversation
	UserUsername     string  `db:"user_username"`
	UserPhotoURL     *string `db:"user_photo_url"`
	ProviderUsername string  `db:"provider_username"`
	ProviderPhotoURL *string `db:"provider_photo_url"`

	LastMessageID        *uuid.UUID `db:"last_message_id"`
	LastMessageSender    *string    `db:"last_message_sender"`
	LastMessageContent   *string    `db:"last_message_content"`
	LastMessageIsRead    *bool      `db:"last_message_is_read"`
	LastMessageCreatedAt *time.Time `db:"last_message_created_at"`
}

func (row conversationDetailRow) toDetail() domain.ConversationDetail {
	detail := domain.ConversationDetail{
		Conversation: row.Conversation,
		User: domain.UserSummary{
			ID:       row.UserID,
			Username: row.UserUsername,
			PhotoURL: row.UserPhotoURL,
		},
		Provider: domain.UserSummary{
			ID:       row.ProviderID,
			Username: row.ProviderUsername,
			PhotoURL: row.ProviderPhotoURL,
		},
	}
	if row.LastMessageID != nil {
		detail.LastMessage = &domain.Message{
			ID:             *row.LastMessageID,
			ConversationID: row.Conversation.ID,
			Sender:         domain.MessageSender(*row.LastMessageSender),
			Content:        *row.LastMessageContent,
			IsRead:         *row.LastMessageIsRead,
			CreatedAt:      *row.LastMessageCreatedAt,
		}
	}
	return detail
}

const conversationDetailQuery = `
	SELECT c.*,
		cu.username AS user_username,
		cu.photo_url AS user_photo_url,
		pu.username AS provider_username,
		pu.photo_url AS provider_photo_url,
		lm.id AS last_message_id,
		lm.sender AS last_message_sender,
		lm.content AS last_message_content,
		lm.is_read AS last_message_is_read,
		lm.created_at AS last_message_created_at
	FROM conversations c
	JOIN users cu ON cu.id = c.user_id
	JOIN users pu ON pu.id = c.provider_id
	LEFT JOIN LATERAL (
		SELECT id, sender, content, is_read, created_at
		FROM messages m
		WHERE m.conversation_id = c.id
		ORDER BY m.created_at DESC
		LIMIT 1
	) lm ON true`

func (r *conversationRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ConversationDetail, error) {
	var row conversationDetailRow
	query := conversationDetailQuery + ` WHERE c.id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	detail := row.toDetail()
	return &detail, nil
}

func (r *conversationRepository) ListByParty(ctx context.Context, partyID uuid.UUID) ([]domain.ConversationDetail, error) {
	var rows []conversationDetailRow
	query := conversationDetailQuery + `
		WHERE c.user_id = $1 OR c.provider_id = $1
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC`

	if err := r.db.SelectContext(ctx, &rows, query, partyID); err != nil {
		return nil, err
	}

	details := make([]domain.ConversationDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

func (r *conversationRepository) SearchByCounterpartName(ctx context.Context, partyID uuid.UUID, role domain.MessageSender, name string) ([]domain.ConversationDetail, error) {
	// Providers search their customers by name; customers search providers.
	where := ` WHERE c.provider_id = $1 AND cu.username ILIKE $2`
	if role == domain.SenderUser {
		where = ` WHERE c.user_id = $1 AND pu.username ILIKE $2`
	}

	var rows []conversationDetailRow
	query := conversationDetailQuery + where + ` ORDER BY COALESCE(lm.created_at, c.created_at) DESC`

	if err := r.db.SelectContext(ctx, &rows, query, partyID, "%"+name+"%"); err != nil {
		return nil, err
	}

	details := make([]domain.ConversationDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}
