package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

// Имена событий. Используются и как тип задачи в очереди.
const (
	NameMessageSent        = "message.sent"
	NameProposalCreated    = "proposal.created"
	NameProposalAccepted   = "proposal.accepted"
	NameProposalRejected   = "proposal.rejected"
	NameTradeCreated       = "trade.created"
	NameTradeStatusChanged = "trade.status_changed"
	NameTradeCompleted     = "trade.completed"
)

type Event interface {
	EventName() string
}

// Publisher доставляет события после фиксации транзакции.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type Handler interface {
	Handle(ctx context.Context, e Event) error
}

type MessageSent struct {
	MessageID  int64     `json:"message_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
}

func (MessageSent) EventName() string { return NameMessageSent }

type ProposalCreated struct {
	ProposalID uuid.UUID `json:"proposal_id"`
}

func (ProposalCreated) EventName() string { return NameProposalCreated }

type ProposalAccepted struct {
	ProposalID uuid.UUID `json:"proposal_id"`
}

func (ProposalAccepted) EventName() string { return NameProposalAccepted }

type ProposalRejected struct {
	ProposalID uuid.UUID `json:"proposal_id"`
}

func (ProposalRejected) EventName() string { return NameProposalRejected }

type TradeCreated struct {
	TradeID uuid.UUID `json:"trade_id"`
}

func (TradeCreated) EventName() string { return NameTradeCreated }

type TradeStatusChanged struct {
	TradeID uuid.UUID               `json:"trade_id"`
	Status  valueobject.TradeStatus `json:"status"`
}

func (TradeStatusChanged) EventName() string { return NameTradeStatusChanged }

type TradeCompleted struct {
	TradeID uuid.UUID `json:"trade_id"`
}

func (TradeCompleted) EventName() string { return NameTradeCompleted }

// Decode восстанавливает событие по имени и JSON-пейлоаду.
func Decode(name string, payload []byte) (Event, error) {
	var target Event
	switch name {
	case NameMessageSent:
		target = &MessageSent{}
	case NameProposalCreated:
		target = &ProposalCreated{}
	case NameProposalAccepted:
		target = &ProposalAccepted{}
	case NameProposalRejected:
		target = &ProposalRejected{}
	case NameTradeCreated:
		target = &TradeCreated{}
	case NameTradeStatusChanged:
		target = &TradeStatusChanged{}
	case NameTradeCompleted:
		target = &TradeCompleted{}
	default:
		return nil, fmt.Errorf("unknown event %q", name)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return deref(target), nil
}

func deref(e Event) Event {
	switch v := e.(type) {
	case *MessageSent:
		return *v
	case *ProposalCreated:
		return *v
	case *ProposalAccepted:
		return *v
	case *ProposalRejected:
		return *v
	case *TradeCreated:
		return *v
	case *TradeStatusChanged:
		return *v
	case *TradeCompleted:
		return *v
	}
	return e
}
