package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type CreateListingRequest struct {
	SkillOfferedID     uuid.UUID `json:"skill_offered_id" binding:"required"`
	SkillDesiredID     uuid.UUID `json:"skill_desired_id" binding:"required"`
	Title              string    `json:"title" binding:"required"`
	Description        string    `json:"description"`
	LocationPreference string    `json:"location_preference"`
}

type UpdateListingRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Status             *string    `json:"status"`
	LocationPreference *string    `json:"location_preference"`
	SkillOfferedID     *uuid.UUID `json:"skill_offered_id"`
	SkillDesiredID     *uuid.UUID `json:"skill_desired_id"`
}

type ListingResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	SkillOfferedID     uuid.UUID `json:"skill_offered_id"`
	SkillOfferedName   string    `json:"skill_offered_name"`
	SkillDesiredID     uuid.UUID `json:"skill_desired_id"`
	SkillDesiredName   string    `json:"skill_desired_name"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	LocationPreference string    `json:"location_preference"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func ToListingResponse(l *entity.SkillListing) ListingResponse {
	return ListingResponse{
		ID:                 l.ID,
		UserID:             l.UserID,
		SkillOfferedID:     l.SkillOfferedID,
		SkillOfferedName:   l.SkillOfferedName,
		SkillDesiredID:     l.SkillDesiredID,
		SkillDesiredName:   l.SkillDesiredName,
		Title:              l.Title,
		Description:        l.Description,
		Status:             string(l.Status),
		LocationPreference: l.LocationPreference,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func ToListingResponses(listings []*entity.SkillListing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToListingResponse(l))
	}
	return out
}

type BlockRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	BlockerID uuid.UUID `json:"blocker_id"`
	BlockedID uuid.UUID `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBlockResponse(b *entity.UserBlock) BlockResponse {
	return BlockResponse{ID: b.ID, BlockerID: b.BlockerID, BlockedID: b.BlockedID, CreatedAt: b.CreatedAt}
}

func ToBlockResponses(blocks []*entity.UserBlock) []BlockResponse {
	out := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, ToBlockResponse(b))
	}
	return out
}

// IsBlockedResponse - block == nil, если блокировки нет.
type IsBlockedResponse struct {
	Blocked bool           `json:"blocked"`
	Block   *BlockResponse `json:"block"`
}
