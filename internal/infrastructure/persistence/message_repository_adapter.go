package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type MessageRepositoryAdapter struct {
	conn
}

func NewMessageRepositoryAdapter(db *sqlx.DB) *MessageRepositoryAdapter {
	return &MessageRepositoryAdapter{conn{db: db}}
}

func (r *MessageRepositoryAdapter) Create(ctx context.Context, msg *entity.Message) error {
	query := `INSERT INTO messages (sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.ex(ctx).GetContext(ctx, &msg.ID, query, msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отправить сообщение")
	}
	return nil
}

func (r *MessageRepositoryAdapter) Conversation(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT id, sender_id, receiver_id, content, created_at FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY id ASC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, userID, otherID, limitOrDefault(limit), offset)
}

func (r *MessageRepositoryAdapter) Inbox(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT id, sender_id, receiver_id, content, created_at FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limitOrDefault(limit), offset)
}

func (r *MessageRepositoryAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Message, error) {
	var rows []messageRow
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить сообщения")
	}
	result := make([]*entity.Message, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

type messageRow struct {
	ID         int64     `db:"id"`
	SenderID   uuid.UUID `db:"sender_id"`
	ReceiverID uuid.UUID `db:"receiver_id"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m *messageRow) toEntity() *entity.Message {
	return &entity.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}
