package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/service"
)

const photoFormField = "photo"

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMe обрабатывает GET /profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(user))
}

// UpdateMe обрабатывает PUT /profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), userID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Location:  req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(user))
}

// UploadPhoto обрабатывает POST /profile/photo (multipart, поле photo).
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(photoFormField)
	if err != nil {
		response.Error(c, apperror.Validation("photo_required", "файл photo обязателен"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.Validation("photo_required", "не удалось открыть файл"))
		return
	}
	defer file.Close()

	user, err := h.profiles.UploadPhoto(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUserResponse(user))
}

// GetPublic обрабатывает GET /users/:id.
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !user.IsActive {
		response.Error(c, apperror.ErrUserNotFound)
		return
	}

	response.Success(c, dto.ToPublicUserResponse(user))
}
