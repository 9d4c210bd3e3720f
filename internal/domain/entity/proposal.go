package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// TradeProposal - предложение обменять навык инициатора на навык получателя.
type TradeProposal struct {
	ID               uuid.UUID
	ProposerID       uuid.UUID
	RecipientID      uuid.UUID
	SkillOfferedID   uuid.UUID
	SkillDesiredID   uuid.UUID
	Message          string
	Status           valueobject.ProposalStatus
	CreatedAt        time.Time
	LastStatusUpdate time.Time
}

func NewTradeProposal(proposerID, recipientID, skillOfferedID, skillDesiredID uuid.UUID, message string) (*TradeProposal, error) {
	if proposerID == recipientID {
		return nil, apperror.ErrSelfProposal
	}
	if skillOfferedID == uuid.Nil || skillDesiredID == uuid.Nil {
		return nil, apperror.ErrInvalidSkill
	}

	now := time.Now()
	return &TradeProposal{
		ID:               uuid.New(),
		ProposerID:       proposerID,
		RecipientID:      recipientID,
		SkillOfferedID:   skillOfferedID,
		SkillDesiredID:   skillDesiredID,
		Message:          strings.TrimSpace(message),
		Status:           valueobject.ProposalStatusPending,
		CreatedAt:        now,
		LastStatusUpdate: now,
	}, nil
}

// terminalError - ошибка конфликта для уже закрытого предложения.
func (p *TradeProposal) terminalError() error {
	if p.Status == valueobject.ProposalStatusAccepted {
		return apperror.ErrProposalAlreadyAccepted
	}
	return apperror.ErrProposalAlreadyRejected
}

func (p *TradeProposal) Accept() error {
	if p.Status.IsTerminal() {
		return p.terminalError()
	}
	p.Status = valueobject.ProposalStatusAccepted
	p.LastStatusUpdate = time.Now()
	return nil
}

func (p *TradeProposal) Reject() error {
	if p.Status.IsTerminal() {
		return p.terminalError()
	}
	p.Status = valueobject.ProposalStatusRejected
	p.LastStatusUpdate = time.Now()
	return nil
}

func (p *TradeProposal) IsRecipient(userID uuid.UUID) bool {
	return p.RecipientID == userID
}

func (p *TradeProposal) IsParticipant(userID uuid.UUID) bool {
	return p.ProposerID == userID || p.RecipientID == userID
}
