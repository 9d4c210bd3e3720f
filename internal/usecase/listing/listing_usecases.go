package listing

import (
	"context"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type CreateListingInput struct {
	UserID             uuid.UUID
	SkillOfferedID     uuid.UUID
	SkillDesiredID     uuid.UUID
	Title              string
	Description        string
	LocationPreference string
}

type CreateListingUseCase struct {
	listingRepo repository.ListingRepository
	skillRepo   repository.SkillRepository
}

func NewCreateListingUseCase(listingRepo repository.ListingRepository, skillRepo repository.SkillRepository) *CreateListingUseCase {
	return &CreateListingUseCase{listingRepo: listingRepo, skillRepo: skillRepo}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, input CreateListingInput) (*entity.SkillListing, error) {
	offered, err := findSkill(ctx, uc.skillRepo, input.SkillOfferedID)
	if err != nil {
		return nil, err
	}
	desired, err := findSkill(ctx, uc.skillRepo, input.SkillDesiredID)
	if err != nil {
		return nil, err
	}

	l, err := entity.NewSkillListing(input.UserID, offered, desired, input.Title, input.Description, input.LocationPreference)
	if err != nil {
		return nil, err
	}
	if err := uc.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

type UpdateListingInput struct {
	Title              *string
	Description        *string
	Status             *string
	LocationPreference *string
	SkillOfferedID     *uuid.UUID
	SkillDesiredID     *uuid.UUID
}

type UpdateListingUseCase struct {
	listingRepo repository.ListingRepository
	skillRepo   repository.SkillRepository
}

func NewUpdateListingUseCase(listingRepo repository.ListingRepository, skillRepo repository.SkillRepository) *UpdateListingUseCase {
	return &UpdateListingUseCase{listingRepo: listingRepo, skillRepo: skillRepo}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID, input UpdateListingInput) (*entity.SkillListing, error) {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, apperror.ErrNotOwner
	}

	patch := entity.ListingPatch{
		Title:              input.Title,
		Description:        input.Description,
		LocationPreference: input.LocationPreference,
	}
	if input.Status != nil {
		status, err := valueobject.NewListingStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	if input.SkillOfferedID != nil {
		if patch.SkillOffered, err = findSkill(ctx, uc.skillRepo, *input.SkillOfferedID); err != nil {
			return nil, err
		}
	}
	if input.SkillDesiredID != nil {
		if patch.SkillDesired, err = findSkill(ctx, uc.skillRepo, *input.SkillDesiredID); err != nil {
			return nil, err
		}
	}

	if err := l.Apply(patch); err != nil {
		return nil, err
	}
	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

type DeleteListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewDeleteListingUseCase(listingRepo repository.ListingRepository) *DeleteListingUseCase {
	return &DeleteListingUseCase{listingRepo: listingRepo}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) error {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !l.IsOwnedBy(userID) {
		return apperror.ErrNotOwner
	}
	return uc.listingRepo.Delete(ctx, listingID)
}

type GetListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewGetListingUseCase(listingRepo repository.ListingRepository) *GetListingUseCase {
	return &GetListingUseCase{listingRepo: listingRepo}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*entity.SkillListing, error) {
	return uc.listingRepo.FindByID(ctx, listingID)
}

type ListListingsUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListListingsUseCase(listingRepo repository.ListingRepository) *ListListingsUseCase {
	return &ListListingsUseCase{listingRepo: listingRepo}
}

// Execute без явного статуса отдаёт только активные объявления.
func (uc *ListListingsUseCase) Execute(ctx context.Context, filter repository.ListingFilter) ([]*entity.SkillListing, error) {
	if filter.Status == nil && filter.UserID == nil {
		active := valueobject.ListingStatusActive
		filter.Status = &active
	}
	return uc.listingRepo.List(ctx, filter)
}

func findSkill(ctx context.Context, skillRepo repository.SkillRepository, id uuid.UUID) (*entity.Skill, error) {
	sk, err := skillRepo.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return nil, apperror.ErrInvalidSkill
	}
	return sk, err
}
