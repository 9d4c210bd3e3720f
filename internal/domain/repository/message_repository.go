package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type MessageRepository interface {
	// Create заполняет ID, выданный базой.
	Create(ctx context.Context, msg *entity.Message) error
	Conversation(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]*entity.Message, error)
	Inbox(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Message, error)
}
