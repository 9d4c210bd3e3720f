package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

type NotificationRepository interface {
	// Insert возвращает false, если строку отсёк уникальный индекс.
	Insert(ctx context.Context, n *entity.Notification) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, userID uuid.UUID, filter NotificationFilter) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}
