package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trade, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Trade, error)
	Update(ctx context.Context, trade *entity.Trade) error
	// ListByUser - обмены, где пользователь user1 или user2, новые первыми.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error)
}
