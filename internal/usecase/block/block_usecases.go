package block

import (
	"context"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type BlockUserUseCase struct {
	blockRepo repository.BlockRepository
	userRepo  repository.UserRepository
}

func NewBlockUserUseCase(blockRepo repository.BlockRepository, userRepo repository.UserRepository) *BlockUserUseCase {
	return &BlockUserUseCase{blockRepo: blockRepo, userRepo: userRepo}
}

// Execute идемпотентен: повторная блокировка возвращает существующую запись.
func (uc *BlockUserUseCase) Execute(ctx context.Context, blockerID, blockedID uuid.UUID) (*entity.UserBlock, error) {
	b, err := entity.NewUserBlock(blockerID, blockedID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.FindByID(ctx, blockedID); err != nil {
		return nil, err
	}
	return uc.blockRepo.Create(ctx, b)
}

type ListBlocksUseCase struct {
	blockRepo repository.BlockRepository
}

func NewListBlocksUseCase(blockRepo repository.BlockRepository) *ListBlocksUseCase {
	return &ListBlocksUseCase{blockRepo: blockRepo}
}

func (uc *ListBlocksUseCase) Execute(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error) {
	return uc.blockRepo.ListByBlocker(ctx, blockerID)
}

type IsBlockedUseCase struct {
	blockRepo repository.BlockRepository
}

func NewIsBlockedUseCase(blockRepo repository.BlockRepository) *IsBlockedUseCase {
	return &IsBlockedUseCase{blockRepo: blockRepo}
}

// Execute сообщает, заблокировал ли blockerID пользователя otherID. Блокировка nil, если нет.
func (uc *IsBlockedUseCase) Execute(ctx context.Context, blockerID, otherID uuid.UUID) (*entity.UserBlock, error) {
	b, err := uc.blockRepo.FindPair(ctx, blockerID, otherID)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	return b, err
}

type UnblockUseCase struct {
	blockRepo repository.BlockRepository
}

func NewUnblockUseCase(blockRepo repository.BlockRepository) *UnblockUseCase {
	return &UnblockUseCase{blockRepo: blockRepo}
}

func (uc *UnblockUseCase) Execute(ctx context.Context, blockerID, blockID uuid.UUID) error {
	b, err := uc.blockRepo.FindByID(ctx, blockID)
	if err != nil {
		return err
	}
	if b.BlockerID != blockerID {
		return apperror.ErrNotOwner
	}
	return uc.blockRepo.Delete(ctx, blockID)
}
