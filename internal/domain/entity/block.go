package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type UserBlock struct {
	ID        uuid.UUID
	BlockerID uuid.UUID
	BlockedID uuid.UUID
	CreatedAt time.Time
}

func NewUserBlock(blockerID, blockedID uuid.UUID) (*UserBlock, error) {
	if blockerID == blockedID {
		return nil, apperror.ErrSelfBlock
	}
	return &UserBlock{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	}, nil
}
