package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/usecase/proposal"
)

type CreateProposalRequest struct {
	RecipientID    uuid.UUID `json:"recipient_id" binding:"required"`
	SkillOfferedID uuid.UUID `json:"skill_offered_id" binding:"required"`
	SkillDesiredID uuid.UUID `json:"skill_desired_id" binding:"required"`
	Message        string    `json:"message"`
}

type ProposalResponse struct {
	ID               uuid.UUID `json:"id"`
	ProposerID       uuid.UUID `json:"proposer_id"`
	RecipientID      uuid.UUID `json:"recipient_id"`
	SkillOfferedID   uuid.UUID `json:"skill_offered_id"`
	SkillDesiredID   uuid.UUID `json:"skill_desired_id"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	LastStatusUpdate time.Time `json:"last_status_update"`
}

func ToProposalResponse(p *entity.TradeProposal) ProposalResponse {
	return ProposalResponse{
		ID:               p.ID,
		ProposerID:       p.ProposerID,
		RecipientID:      p.RecipientID,
		SkillOfferedID:   p.SkillOfferedID,
		SkillDesiredID:   p.SkillDesiredID,
		Message:          p.Message,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		LastStatusUpdate: p.LastStatusUpdate,
	}
}

func ToProposalResponses(proposals []*entity.TradeProposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, ToProposalResponse(p))
	}
	return out
}

type TradeResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ProposalID           *uuid.UUID `json:"proposal_id"`
	User1ID              uuid.UUID  `json:"user1_id"`
	User2ID              uuid.UUID  `json:"user2_id"`
	Skill1ID             uuid.UUID  `json:"skill1_id"`
	Skill2ID             uuid.UUID  `json:"skill2_id"`
	TermsAgreed          string     `json:"terms_agreed"`
	Status               string     `json:"status"`
	StartDate            time.Time  `json:"start_date"`
	ActualCompletionDate *time.Time `json:"actual_completion_date"`
}

func ToTradeResponse(t *entity.Trade) TradeResponse {
	return TradeResponse{
		ID:                   t.ID,
		ProposalID:           t.ProposalID,
		User1ID:              t.User1ID,
		User2ID:              t.User2ID,
		Skill1ID:             t.Skill1ID,
		Skill2ID:             t.Skill2ID,
		TermsAgreed:          t.TermsAgreed,
		Status:               string(t.Status),
		StartDate:            t.StartDate,
		ActualCompletionDate: t.ActualCompletionDate,
	}
}

func ToTradeResponses(trades []*entity.Trade) []TradeResponse {
	out := make([]TradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, ToTradeResponse(t))
	}
	return out
}

type AcceptProposalResponse struct {
	Proposal ProposalResponse `json:"proposal"`
	Trade    TradeResponse    `json:"trade"`
}

func ToAcceptProposalResponse(r *proposal.AcceptResult) AcceptProposalResponse {
	return AcceptProposalResponse{
		Proposal: ToProposalResponse(r.Proposal),
		Trade:    ToTradeResponse(r.Trade),
	}
}
