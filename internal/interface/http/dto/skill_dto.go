package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/usecase/skill"
)

type CreateSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type SkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSkillResponse(s *entity.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func ToSkillResponses(skills []*entity.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, ToSkillResponse(s))
	}
	return out
}

// UserSkillItem - навык в запросе: skill_id или skill_name.
type UserSkillItem struct {
	SkillID          *uuid.UUID `json:"skill_id"`
	SkillName        string     `json:"skill_name"`
	Type             string     `json:"type" binding:"required"`
	ProficiencyLevel *string    `json:"proficiency_level"`
	Details          *string    `json:"details"`
}

type AddUserSkillsRequest struct {
	Skills []UserSkillItem `json:"skills" binding:"required"`
}

func (r AddUserSkillsRequest) ToInputs() []skill.UserSkillInput {
	inputs := make([]skill.UserSkillInput, 0, len(r.Skills))
	for _, item := range r.Skills {
		inputs = append(inputs, skill.UserSkillInput{
			SkillID:          item.SkillID,
			SkillName:        item.SkillName,
			Type:             item.Type,
			ProficiencyLevel: item.ProficiencyLevel,
			Details:          item.Details,
		})
	}
	return inputs
}

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	Type             string    `json:"type"`
	ProficiencyLevel *string   `json:"proficiency_level"`
	Details          *string   `json:"details"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToUserSkillResponse(us *entity.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:               us.ID,
		UserID:           us.UserID,
		SkillID:          us.SkillID,
		SkillName:        us.SkillName,
		Type:             string(us.Type),
		ProficiencyLevel: us.ProficiencyLevel,
		Details:          us.Details,
		CreatedAt:        us.CreatedAt,
	}
}

func ToUserSkillResponses(items []*entity.UserSkill) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, us := range items {
		out = append(out, ToUserSkillResponse(us))
	}
	return out
}

type UserSkillsResponse struct {
	UserID    uuid.UUID           `json:"user_id"`
	Offerings []UserSkillResponse `json:"offerings"`
	Desires   []UserSkillResponse `json:"desires"`
}

func ToUserSkillsResponse(s *skill.UserSkills) UserSkillsResponse {
	return UserSkillsResponse{
		UserID:    s.UserID,
		Offerings: ToUserSkillResponses(s.Offerings),
		Desires:   ToUserSkillResponses(s.Desires),
	}
}
