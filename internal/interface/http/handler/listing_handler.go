package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/listing"
)

type ListingHandler struct {
	createUC *listing.CreateListingUseCase
	updateUC *listing.UpdateListingUseCase
	deleteUC *listing.DeleteListingUseCase
	getUC    *listing.GetListingUseCase
	listUC   *listing.ListListingsUseCase
}

func NewListingHandler(
	createUC *listing.CreateListingUseCase,
	updateUC *listing.UpdateListingUseCase,
	deleteUC *listing.DeleteListingUseCase,
	getUC *listing.GetListingUseCase,
	listUC *listing.ListListingsUseCase,
) *ListingHandler {
	return &ListingHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
	}
}

// ListListings обрабатывает GET /listings?user_id=&status=.
func (h *ListingHandler) ListListings(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.ListingFilter{Limit: limit, Offset: offset}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("invalid_id", "user_id должен быть валидным UUID"))
			return
		}
		filter.UserID = &userID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := valueobject.NewListingStatus(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = &status
	}

	listings, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToListingResponses(listings))
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	l, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToListingResponse(l))
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), listing.CreateListingInput{
		UserID:             userID,
		SkillOfferedID:     req.SkillOfferedID,
		SkillDesiredID:     req.SkillDesiredID,
		Title:              req.Title,
		Description:        req.Description,
		LocationPreference: req.LocationPreference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToListingResponse(created))
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), userID, id, listing.UpdateListingInput{
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		LocationPreference: req.LocationPreference,
		SkillOfferedID:     req.SkillOfferedID,
		SkillDesiredID:     req.SkillDesiredID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToListingResponse(updated))
}

func (h *ListingHandler) DeleteListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
