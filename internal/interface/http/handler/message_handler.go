package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/message"
)

type MessageHandler struct {
	sendUC         *message.SendMessageUseCase
	conversationUC *message.ConversationUseCase
	inboxUC        *message.InboxUseCase
}

func NewMessageHandler(
	sendUC *message.SendMessageUseCase,
	conversationUC *message.ConversationUseCase,
	inboxUC *message.InboxUseCase,
) *MessageHandler {
	return &MessageHandler{sendUC: sendUC, conversationUC: conversationUC, inboxUC: inboxUC}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.sendUC.Execute(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToMessageResponse(msg))
}

// ListMessages обрабатывает GET /messages?with=:userId.
// Без параметра with возвращает все сообщения пользователя, новые первыми.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	with := c.Query("with")
	if with == "" {
		messages, err := h.inboxUC.Execute(c.Request.Context(), userID, limit, offset)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ToMessageResponses(messages))
		return
	}

	otherID, err := uuid.Parse(with)
	if err != nil {
		response.Error(c, apperror.Validation("invalid_id", "with должен быть валидным UUID"))
		return
	}

	messages, err := h.conversationUC.Execute(c.Request.Context(), userID, otherID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToMessageResponses(messages))
}
