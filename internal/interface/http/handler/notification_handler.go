package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/usecase/notification"
)

type NotificationHandler struct {
	listUC        *notification.ListNotificationsUseCase
	unreadCountUC *notification.UnreadCountUseCase
	markAllReadUC *notification.MarkAllReadUseCase
	markReadUC    *notification.MarkReadUseCase
}

func NewNotificationHandler(
	listUC *notification.ListNotificationsUseCase,
	unreadCountUC *notification.UnreadCountUseCase,
	markAllReadUC *notification.MarkAllReadUseCase,
	markReadUC *notification.MarkReadUseCase,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:        listUC,
		unreadCountUC: unreadCountUC,
		markAllReadUC: markAllReadUC,
		markReadUC:    markReadUC,
	}
}

// ListNotifications обрабатывает GET /notifications?unread=true.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	items, err := h.listUC.Execute(c.Request.Context(), userID, repository.NotificationFilter{
		UnreadOnly: c.Query("unread") == "true",
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToNotificationResponses(items))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.unreadCountUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := h.markAllReadUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	n, err := h.markReadUC.Execute(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToNotificationResponse(n))
}
