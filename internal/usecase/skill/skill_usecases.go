package skill

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type ListSkillsUseCase struct {
	skillRepo repository.SkillRepository
}

func NewListSkillsUseCase(skillRepo repository.SkillRepository) *ListSkillsUseCase {
	return &ListSkillsUseCase{skillRepo: skillRepo}
}

func (uc *ListSkillsUseCase) Execute(ctx context.Context, search string, limit, offset int) ([]*entity.Skill, error) {
	return uc.skillRepo.List(ctx, strings.TrimSpace(search), limit, offset)
}

// CreateSkillUseCase возвращает существующий навык, если имя совпадает без учёта регистра.
type CreateSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewCreateSkillUseCase(skillRepo repository.SkillRepository) *CreateSkillUseCase {
	return &CreateSkillUseCase{skillRepo: skillRepo}
}

func (uc *CreateSkillUseCase) Execute(ctx context.Context, name string) (*entity.Skill, error) {
	sk, err := entity.NewSkill(name)
	if err != nil {
		return nil, err
	}
	return uc.skillRepo.GetOrCreate(ctx, sk)
}

type UserSkillInput struct {
	SkillID          *uuid.UUID
	SkillName        string
	Type             string
	ProficiencyLevel *string
	Details          *string
}

type AddUserSkillsUseCase struct {
	skillRepo     repository.SkillRepository
	userSkillRepo repository.UserSkillRepository
}

func NewAddUserSkillsUseCase(skillRepo repository.SkillRepository, userSkillRepo repository.UserSkillRepository) *AddUserSkillsUseCase {
	return &AddUserSkillsUseCase{skillRepo: skillRepo, userSkillRepo: userSkillRepo}
}

// Execute добавляет навыки пачкой. Уже существующие связки пропускаются.
func (uc *AddUserSkillsUseCase) Execute(ctx context.Context, userID uuid.UUID, inputs []UserSkillInput) ([]*entity.UserSkill, error) {
	if len(inputs) == 0 {
		return nil, apperror.Validation("skills_required", "укажите хотя бы один навык")
	}

	added := make([]*entity.UserSkill, 0, len(inputs))
	for _, in := range inputs {
		skillType, err := valueobject.NewSkillType(in.Type)
		if err != nil {
			return nil, err
		}
		sk, err := uc.resolve(ctx, in)
		if err != nil {
			return nil, err
		}
		us, err := entity.NewUserSkill(userID, sk, skillType, in.ProficiencyLevel, in.Details)
		if err != nil {
			return nil, err
		}
		created, err := uc.userSkillRepo.Add(ctx, us)
		if err != nil {
			return nil, err
		}
		if created {
			added = append(added, us)
		}
	}
	return added, nil
}

func (uc *AddUserSkillsUseCase) resolve(ctx context.Context, in UserSkillInput) (*entity.Skill, error) {
	if in.SkillID != nil {
		sk, err := uc.skillRepo.FindByID(ctx, *in.SkillID)
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidSkill
		}
		return sk, err
	}
	sk, err := entity.NewSkill(in.SkillName)
	if err != nil {
		return nil, err
	}
	return uc.skillRepo.GetOrCreate(ctx, sk)
}

// UserSkills - публичный список навыков пользователя.
type UserSkills struct {
	UserID    uuid.UUID
	Offerings []*entity.UserSkill
	Desires   []*entity.UserSkill
}

type ListUserSkillsUseCase struct {
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
}

func NewListUserSkillsUseCase(userRepo repository.UserRepository, userSkillRepo repository.UserSkillRepository) *ListUserSkillsUseCase {
	return &ListUserSkillsUseCase{userRepo: userRepo, userSkillRepo: userSkillRepo}
}

func (uc *ListUserSkillsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*UserSkills, error) {
	if _, err := uc.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	all, err := uc.userSkillRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	result := &UserSkills{
		UserID:    userID,
		Offerings: []*entity.UserSkill{},
		Desires:   []*entity.UserSkill{},
	}
	for _, us := range all {
		if us.Type == valueobject.SkillTypeOffering {
			result.Offerings = append(result.Offerings, us)
		} else {
			result.Desires = append(result.Desires, us)
		}
	}
	return result, nil
}

type DeleteUserSkillUseCase struct {
	userSkillRepo repository.UserSkillRepository
}

func NewDeleteUserSkillUseCase(userSkillRepo repository.UserSkillRepository) *DeleteUserSkillUseCase {
	return &DeleteUserSkillUseCase{userSkillRepo: userSkillRepo}
}

func (uc *DeleteUserSkillUseCase) Execute(ctx context.Context, userID, userSkillID uuid.UUID) error {
	us, err := uc.userSkillRepo.FindByID(ctx, userSkillID)
	if err != nil {
		return err
	}
	if us.UserID != userID {
		return apperror.ErrNotOwner
	}
	return uc.userSkillRepo.Delete(ctx, userSkillID)
}
