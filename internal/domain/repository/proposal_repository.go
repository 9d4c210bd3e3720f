package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
)

type ProposalBox string

const (
	ProposalBoxAll      ProposalBox = "all"
	ProposalBoxSent     ProposalBox = "sent"
	ProposalBoxReceived ProposalBox = "received"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.TradeProposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error)
	// FindByIDForUpdate блокирует строку до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error)
	UpdateStatus(ctx context.Context, proposal *entity.TradeProposal) error
	ListByUser(ctx context.Context, userID uuid.UUID, box ProposalBox) ([]*entity.TradeProposal, error)
}
