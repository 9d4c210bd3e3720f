package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// DefaultTermsAgreed подставляется, если в предложении не было сообщения.
const DefaultTermsAgreed = "Trade agreement"

type Trade struct {
	ID                   uuid.UUID
	ProposalID           *uuid.UUID
	User1ID              uuid.UUID
	User2ID              uuid.UUID
	Skill1ID             uuid.UUID
	Skill2ID             uuid.UUID
	TermsAgreed          string
	Status               valueobject.TradeStatus
	StartDate            time.Time
	ActualCompletionDate *time.Time
}

// NewTradeFromProposal строит обмен из принятого предложения:
// инициатор становится user1 со своим навыком, получатель - user2.
func NewTradeFromProposal(p *TradeProposal) (*Trade, error) {
	if p.Status != valueobject.ProposalStatusAccepted {
		return nil, apperror.NewWithReason(apperror.ErrCodeConflict, "proposal_not_accepted", "обмен создаётся только из принятого предложения")
	}

	terms := p.Message
	if terms == "" {
		terms = DefaultTermsAgreed
	}

	proposalID := p.ID
	return &Trade{
		ID:          uuid.New(),
		ProposalID:  &proposalID,
		User1ID:     p.ProposerID,
		User2ID:     p.RecipientID,
		Skill1ID:    p.SkillOfferedID,
		Skill2ID:    p.SkillDesiredID,
		TermsAgreed: terms,
		Status:      valueobject.TradeStatusActive,
		StartDate:   time.Now(),
	}, nil
}

// Start переводит обмен в работу.
func (t *Trade) Start() error {
	if !t.Status.CanTransitionTo(valueobject.TradeStatusInProgress) {
		if t.Status == valueobject.TradeStatusCompleted {
			return apperror.ErrTradeAlreadyCompleted
		}
		return apperror.ErrTradeInvalidTransition
	}
	t.Status = valueobject.TradeStatusInProgress
	return nil
}

func (t *Trade) Complete() error {
	if t.Status == valueobject.TradeStatusCompleted {
		return apperror.ErrTradeAlreadyCompleted
	}
	if !t.Status.CanTransitionTo(valueobject.TradeStatusCompleted) {
		return apperror.ErrTradeInvalidTransition
	}
	now := time.Now()
	t.Status = valueobject.TradeStatusCompleted
	t.ActualCompletionDate = &now
	return nil
}

func (t *Trade) IsParticipant(userID uuid.UUID) bool {
	return t.User1ID == userID || t.User2ID == userID
}
