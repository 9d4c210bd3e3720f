package proposal

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/trade"
)

type CreateProposalInput struct {
	ProposerID     uuid.UUID
	RecipientID    uuid.UUID
	SkillOfferedID uuid.UUID
	SkillDesiredID uuid.UUID
	Message        string
}

type CreateProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	events       event.Publisher
}

func NewCreateProposalUseCase(
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	events event.Publisher,
) *CreateProposalUseCase {
	return &CreateProposalUseCase{
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		events:       events,
	}
}

func (uc *CreateProposalUseCase) Execute(ctx context.Context, input CreateProposalInput) (*entity.TradeProposal, error) {
	proposal, err := entity.NewTradeProposal(
		input.ProposerID,
		input.RecipientID,
		input.SkillOfferedID,
		input.SkillDesiredID,
		input.Message,
	)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.FindByID(ctx, input.RecipientID); err != nil {
		return nil, err
	}

	for _, skillID := range []uuid.UUID{input.SkillOfferedID, input.SkillDesiredID} {
		if _, err := uc.skillRepo.FindByID(ctx, skillID); err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.ErrInvalidSkill
			}
			return nil, err
		}
	}

	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	publish(ctx, uc.events, proposal.ID, event.ProposalCreated{ProposalID: proposal.ID})
	return proposal, nil
}

// AcceptResult - принятое предложение и созданный по нему обмен.
type AcceptResult struct {
	Proposal *entity.TradeProposal
	Trade    *entity.Trade
}

type AcceptProposalUseCase struct {
	tx           repository.TxManager
	proposalRepo repository.ProposalRepository
	materialize  *trade.MaterializeTradeUseCase
	events       event.Publisher
}

func NewAcceptProposalUseCase(
	tx repository.TxManager,
	proposalRepo repository.ProposalRepository,
	materialize *trade.MaterializeTradeUseCase,
	events event.Publisher,
) *AcceptProposalUseCase {
	return &AcceptProposalUseCase{
		tx:           tx,
		proposalRepo: proposalRepo,
		materialize:  materialize,
		events:       events,
	}
}

func (uc *AcceptProposalUseCase) Execute(ctx context.Context, proposalID, actorID uuid.UUID) (*AcceptResult, error) {
	var result AcceptResult
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.proposalRepo.FindByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if !p.IsRecipient(actorID) {
			return apperror.ErrNotProposalRecipient
		}
		if err := p.Accept(); err != nil {
			return err
		}
		if err := uc.proposalRepo.UpdateStatus(ctx, p); err != nil {
			return err
		}

		t, err := uc.materialize.Execute(ctx, p)
		if err != nil {
			return err
		}
		result = AcceptResult{Proposal: p, Trade: t}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Инициатор получит два trade_accepted: по предложению и по созданному обмену.
	publish(ctx, uc.events, proposalID,
		event.ProposalAccepted{ProposalID: result.Proposal.ID},
		event.TradeCreated{TradeID: result.Trade.ID},
	)

	logger.Log.WithFields(logrus.Fields{
		"proposal_id": result.Proposal.ID,
		"trade_id":    result.Trade.ID,
	}).Info("предложение принято")
	return &result, nil
}

type RejectProposalUseCase struct {
	tx           repository.TxManager
	proposalRepo repository.ProposalRepository
	events       event.Publisher
}

func NewRejectProposalUseCase(tx repository.TxManager, proposalRepo repository.ProposalRepository, events event.Publisher) *RejectProposalUseCase {
	return &RejectProposalUseCase{tx: tx, proposalRepo: proposalRepo, events: events}
}

func (uc *RejectProposalUseCase) Execute(ctx context.Context, proposalID, actorID uuid.UUID) (*entity.TradeProposal, error) {
	var proposal *entity.TradeProposal
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.proposalRepo.FindByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if !p.IsRecipient(actorID) {
			return apperror.ErrNotProposalRecipient
		}
		if err := p.Reject(); err != nil {
			return err
		}
		if err := uc.proposalRepo.UpdateStatus(ctx, p); err != nil {
			return err
		}
		proposal = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, proposal.ID, event.ProposalRejected{ProposalID: proposal.ID})
	return proposal, nil
}

type GetProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewGetProposalUseCase(proposalRepo repository.ProposalRepository) *GetProposalUseCase {
	return &GetProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *GetProposalUseCase) Execute(ctx context.Context, proposalID, actorID uuid.UUID) (*entity.TradeProposal, error) {
	p, err := uc.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !p.IsParticipant(actorID) {
		return nil, apperror.ErrNotProposalParticipant
	}
	return p, nil
}

type ListProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewListProposalsUseCase(proposalRepo repository.ProposalRepository) *ListProposalsUseCase {
	return &ListProposalsUseCase{proposalRepo: proposalRepo}
}

func (uc *ListProposalsUseCase) Execute(ctx context.Context, userID uuid.UUID, box repository.ProposalBox) ([]*entity.TradeProposal, error) {
	switch box {
	case repository.ProposalBoxAll, repository.ProposalBoxSent, repository.ProposalBoxReceived:
	case "":
		box = repository.ProposalBoxAll
	default:
		return nil, apperror.Validation("invalid_box", "box должен быть all, sent или received")
	}
	return uc.proposalRepo.ListByUser(ctx, userID, box)
}

func publish(ctx context.Context, events event.Publisher, proposalID uuid.UUID, evs ...event.Event) {
	if err := events.Publish(context.WithoutCancel(ctx), evs...); err != nil {
		logger.Log.WithError(err).WithField("proposal_id", proposalID).Warn("не удалось разослать уведомления по предложению")
	}
}
