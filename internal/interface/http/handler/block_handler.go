package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/usecase/block"
)

type BlockHandler struct {
	blockUC     *block.BlockUserUseCase
	listUC      *block.ListBlocksUseCase
	isBlockedUC *block.IsBlockedUseCase
	unblockUC   *block.UnblockUseCase
}

func NewBlockHandler(
	blockUC *block.BlockUserUseCase,
	listUC *block.ListBlocksUseCase,
	isBlockedUC *block.IsBlockedUseCase,
	unblockUC *block.UnblockUseCase,
) *BlockHandler {
	return &BlockHandler{blockUC: blockUC, listUC: listUC, isBlockedUC: isBlockedUC, unblockUC: unblockUC}
}

// Block обрабатывает POST /blocks. Повторная блокировка возвращает существующую запись.
func (h *BlockHandler) Block(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.BlockRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.blockUC.Execute(c.Request.Context(), userID, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToBlockResponse(b))
}

func (h *BlockHandler) ListBlocks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	blocks, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBlockResponses(blocks))
}

// IsBlocked обрабатывает GET /blocks/is-blocked/:userId.
func (h *BlockHandler) IsBlocked(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	otherID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	b, err := h.isBlockedUC.Execute(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := dto.IsBlockedResponse{Blocked: b != nil}
	if b != nil {
		resp := dto.ToBlockResponse(b)
		result.Block = &resp
	}
	response.Success(c, result)
}

func (h *BlockHandler) Unblock(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.unblockUC.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
