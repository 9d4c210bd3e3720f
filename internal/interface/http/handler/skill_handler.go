package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/usecase/skill"
)

type SkillHandler struct {
	listSkillsUC      *skill.ListSkillsUseCase
	createSkillUC     *skill.CreateSkillUseCase
	addUserSkillsUC   *skill.AddUserSkillsUseCase
	listUserSkillsUC  *skill.ListUserSkillsUseCase
	deleteUserSkillUC *skill.DeleteUserSkillUseCase
}

func NewSkillHandler(
	listSkillsUC *skill.ListSkillsUseCase,
	createSkillUC *skill.CreateSkillUseCase,
	addUserSkillsUC *skill.AddUserSkillsUseCase,
	listUserSkillsUC *skill.ListUserSkillsUseCase,
	deleteUserSkillUC *skill.DeleteUserSkillUseCase,
) *SkillHandler {
	return &SkillHandler{
		listSkillsUC:      listSkillsUC,
		createSkillUC:     createSkillUC,
		addUserSkillsUC:   addUserSkillsUC,
		listUserSkillsUC:  listUserSkillsUC,
		deleteUserSkillUC: deleteUserSkillUC,
	}
}

// ListSkills обрабатывает GET /skills?search=.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	limit, offset := pagination(c)
	skills, err := h.listSkillsUC.Execute(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSkillResponses(skills))
}

// CreateSkill обрабатывает POST /skills. Существующий навык возвращается как есть.
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req dto.CreateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createSkillUC.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSkillResponse(created))
}

// AddUserSkills обрабатывает POST /user-skills.
func (h *SkillHandler) AddUserSkills(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AddUserSkillsRequest
	if !bindJSON(c, &req) {
		return
	}

	added, err := h.addUserSkillsUC.Execute(c.Request.Context(), userID, req.ToInputs())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToUserSkillResponses(added))
}

// ListUserSkills обрабатывает GET /user-skills/:userId.
func (h *SkillHandler) ListUserSkills(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	skills, err := h.listUserSkillsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserSkillsResponse(skills))
}

// DeleteUserSkill обрабатывает DELETE /user-skills/:id.
func (h *SkillHandler) DeleteUserSkill(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUserSkillUC.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
