package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/usecase/proposal"
)

type ProposalHandler struct {
	createProposalUC *proposal.CreateProposalUseCase
	acceptProposalUC *proposal.AcceptProposalUseCase
	rejectProposalUC *proposal.RejectProposalUseCase
	getProposalUC    *proposal.GetProposalUseCase
	listProposalsUC  *proposal.ListProposalsUseCase
}

func NewProposalHandler(
	createProposalUC *proposal.CreateProposalUseCase,
	acceptProposalUC *proposal.AcceptProposalUseCase,
	rejectProposalUC *proposal.RejectProposalUseCase,
	getProposalUC *proposal.GetProposalUseCase,
	listProposalsUC *proposal.ListProposalsUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		createProposalUC: createProposalUC,
		acceptProposalUC: acceptProposalUC,
		rejectProposalUC: rejectProposalUC,
		getProposalUC:    getProposalUC,
		listProposalsUC:  listProposalsUC,
	}
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.createProposalUC.Execute(c.Request.Context(), proposal.CreateProposalInput{
		ProposerID:     userID,
		RecipientID:    req.RecipientID,
		SkillOfferedID: req.SkillOfferedID,
		SkillDesiredID: req.SkillDesiredID,
		Message:        req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProposalResponse(created))
}

// ListProposals обрабатывает GET /proposals?box=sent|received.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	proposals, err := h.listProposalsUC.Execute(c.Request.Context(), userID, repository.ProposalBox(c.Query("box")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponses(proposals))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	proposalID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.getProposalUC.Execute(c.Request.Context(), proposalID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(p))
}

// AcceptProposal обрабатывает POST /proposals/:id/accept и возвращает предложение вместе с обменом.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	proposalID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.acceptProposalUC.Execute(c.Request.Context(), proposalID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAcceptProposalResponse(result))
}

func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	proposalID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.rejectProposalUC.Execute(c.Request.Context(), proposalID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalResponse(p))
}
