package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// SkillListing - публичное объявление "предлагаю X, хочу Y".
type SkillListing struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	SkillOfferedID     uuid.UUID
	SkillOfferedName   string
	SkillDesiredID     uuid.UUID
	SkillDesiredName   string
	Title              string
	Description        string
	Status             valueobject.ListingStatus
	LocationPreference string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewSkillListing(userID uuid.UUID, offered, desired *Skill, title, description, location string) (*SkillListing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("listing_title_required", "заголовок объявления обязателен")
	}
	now := time.Now()
	return &SkillListing{
		ID:                 uuid.New(),
		UserID:             userID,
		SkillOfferedID:     offered.ID,
		SkillOfferedName:   offered.Name,
		SkillDesiredID:     desired.ID,
		SkillDesiredName:   desired.Name,
		Title:              title,
		Description:        description,
		Status:             valueobject.ListingStatusActive,
		LocationPreference: location,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (l *SkillListing) IsOwnedBy(userID uuid.UUID) bool {
	return l.UserID == userID
}

// ListingPatch - частичное обновление объявления.
type ListingPatch struct {
	Title              *string
	Description        *string
	Status             *valueobject.ListingStatus
	LocationPreference *string
	SkillOffered       *Skill
	SkillDesired       *Skill
}

func (l *SkillListing) Apply(p ListingPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return apperror.Validation("listing_title_required", "заголовок объявления обязателен")
		}
		l.Title = title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.LocationPreference != nil {
		l.LocationPreference = *p.LocationPreference
	}
	if p.SkillOffered != nil {
		l.SkillOfferedID, l.SkillOfferedName = p.SkillOffered.ID, p.SkillOffered.Name
	}
	if p.SkillDesired != nil {
		l.SkillDesiredID, l.SkillDesiredName = p.SkillDesired.ID, p.SkillDesired.Name
	}
	l.UpdatedAt = time.Now()
	return nil
}
