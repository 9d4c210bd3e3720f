package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const maxSkillNameLength = 100

type Skill struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

func NewSkill(name string) (*Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("skill_name_required", "название навыка обязательно")
	}
	if len([]rune(name)) > maxSkillNameLength {
		return nil, apperror.Validation("skill_name_too_long", "название навыка слишком длинное")
	}
	return &Skill{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// UserSkill - связь пользователя с навыком (предлагает или хочет получить).
type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	Type             valueobject.SkillType
	ProficiencyLevel *string
	Details          *string
	CreatedAt        time.Time
}

func NewUserSkill(userID uuid.UUID, skill *Skill, skillType valueobject.SkillType, proficiency, details *string) (*UserSkill, error) {
	if !skillType.IsValid() {
		return nil, apperror.Validation("invalid_skill_type", "тип навыка должен быть offering или desiring")
	}
	return &UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          skill.ID,
		SkillName:        skill.Name,
		Type:             skillType,
		ProficiencyLevel: proficiency,
		Details:          details,
		CreatedAt:        time.Now(),
	}, nil
}
