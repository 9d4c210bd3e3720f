package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	Content    string    `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToMessageResponse(m *entity.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

func ToMessageResponses(messages []*entity.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return out
}

type NotificationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	MessageText string     `json:"message_text"`
	LinkURL     *string    `json:"link_url"`
	MessageID   *int64     `json:"message_id"`
	ProposalID  *uuid.UUID `json:"proposal_id"`
	TradeID     *uuid.UUID `json:"trade_id"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		MessageText: n.MessageText,
		LinkURL:     n.LinkURL,
		MessageID:   n.MessageID,
		ProposalID:  n.ProposalID,
		TradeID:     n.TradeID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}

func ToNotificationResponses(items []*entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
