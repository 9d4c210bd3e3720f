package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

// Notification неизменяемо, кроме флага прочтения.
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	MessageID   *int64
	ProposalID  *uuid.UUID
	TradeID     *uuid.UUID
	Type        valueobject.NotificationType
	MessageText string
	LinkURL     *string
	IsRead      bool
	CreatedAt   time.Time
}

func NewNotification(userID uuid.UUID, kind valueobject.NotificationType, text string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        kind,
		MessageText: text,
		CreatedAt:   time.Now(),
	}
}

func (n *Notification) WithMessage(id int64) *Notification {
	n.MessageID = &id
	return n
}

func (n *Notification) WithProposal(id uuid.UUID) *Notification {
	n.ProposalID = &id
	return n
}

func (n *Notification) WithTrade(id uuid.UUID) *Notification {
	n.TradeID = &id
	return n
}

func (n *Notification) WithLink(url string) *Notification {
	n.LinkURL = &url
	return n
}

func (n *Notification) IsOwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}
