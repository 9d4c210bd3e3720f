package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

type ListingFilter struct {
	UserID *uuid.UUID
	Status *valueobject.ListingStatus
	Limit  int
	Offset int
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.SkillListing) error
	Update(ctx context.Context, listing *entity.SkillListing) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entity.SkillListing, error)
}

type BlockRepository interface {
	// Create возвращает существующую блокировку, если она уже есть.
	Create(ctx context.Context, block *entity.UserBlock) (*entity.UserBlock, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserBlock, error)
	ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error)
	FindPair(ctx context.Context, blockerID, blockedID uuid.UUID) (*entity.UserBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
