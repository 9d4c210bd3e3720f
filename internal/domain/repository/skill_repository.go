package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

type SkillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error)
	FindByName(ctx context.Context, name string) (*entity.Skill, error)
	// GetOrCreate возвращает навык с таким именем без учёта регистра, создавая при отсутствии.
	GetOrCreate(ctx context.Context, skill *entity.Skill) (*entity.Skill, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Skill, error)
}

type UserSkillRepository interface {
	// Add возвращает false, если такая связка уже есть.
	Add(ctx context.Context, us *entity.UserSkill) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserSkill, error)
	ListByUser(ctx context.Context, userID uuid.UUID, skillType *valueobject.SkillType) ([]*entity.UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
