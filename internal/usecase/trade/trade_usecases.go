package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// MaterializeTradeUseCase создаёт обмен из принятого предложения.
// Вызывается внутри транзакции принятия; повторный вызов для того же
// предложения отсекается уникальным proposal_id.
type MaterializeTradeUseCase struct {
	tradeRepo repository.TradeRepository
}

func NewMaterializeTradeUseCase(tradeRepo repository.TradeRepository) *MaterializeTradeUseCase {
	return &MaterializeTradeUseCase{tradeRepo: tradeRepo}
}

func (uc *MaterializeTradeUseCase) Execute(ctx context.Context, proposal *entity.TradeProposal) (*entity.Trade, error) {
	trade, err := entity.NewTradeFromProposal(proposal)
	if err != nil {
		return nil, err
	}
	if err := uc.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

type StartTradeUseCase struct {
	tx        repository.TxManager
	tradeRepo repository.TradeRepository
	events    event.Publisher
}

func NewStartTradeUseCase(tx repository.TxManager, tradeRepo repository.TradeRepository, events event.Publisher) *StartTradeUseCase {
	return &StartTradeUseCase{tx: tx, tradeRepo: tradeRepo, events: events}
}

func (uc *StartTradeUseCase) Execute(ctx context.Context, tradeID, actorID uuid.UUID) (*entity.Trade, error) {
	trade, err := lockAndApply(ctx, uc.tx, uc.tradeRepo, tradeID, actorID, (*entity.Trade).Start)
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, trade.ID, event.TradeStatusChanged{TradeID: trade.ID, Status: trade.Status})
	return trade, nil
}

type CompleteTradeUseCase struct {
	tx        repository.TxManager
	tradeRepo repository.TradeRepository
	events    event.Publisher
}

func NewCompleteTradeUseCase(tx repository.TxManager, tradeRepo repository.TradeRepository, events event.Publisher) *CompleteTradeUseCase {
	return &CompleteTradeUseCase{tx: tx, tradeRepo: tradeRepo, events: events}
}

func (uc *CompleteTradeUseCase) Execute(ctx context.Context, tradeID, actorID uuid.UUID) (*entity.Trade, error) {
	trade, err := lockAndApply(ctx, uc.tx, uc.tradeRepo, tradeID, actorID, (*entity.Trade).Complete)
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, trade.ID, event.TradeCompleted{TradeID: trade.ID})
	return trade, nil
}

// lockAndApply - блокировка строки, проверка участника, переход статуса и запись в одной транзакции.
func lockAndApply(
	ctx context.Context,
	tx repository.TxManager,
	tradeRepo repository.TradeRepository,
	tradeID, actorID uuid.UUID,
	transition func(*entity.Trade) error,
) (*entity.Trade, error) {
	var trade *entity.Trade
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := tradeRepo.FindByIDForUpdate(ctx, tradeID)
		if err != nil {
			return err
		}
		if !t.IsParticipant(actorID) {
			return apperror.ErrNotTradeParticipant
		}
		if err := transition(t); err != nil {
			return err
		}
		if err := tradeRepo.Update(ctx, t); err != nil {
			return err
		}
		trade = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

func publish(ctx context.Context, events event.Publisher, tradeID uuid.UUID, e event.Event) {
	if err := events.Publish(context.WithoutCancel(ctx), e); err != nil {
		logger.Log.WithError(err).WithField("trade_id", tradeID).Warn("не удалось разослать уведомления по обмену")
	}
}

type GetTradeUseCase struct {
	tradeRepo repository.TradeRepository
}

func NewGetTradeUseCase(tradeRepo repository.TradeRepository) *GetTradeUseCase {
	return &GetTradeUseCase{tradeRepo: tradeRepo}
}

func (uc *GetTradeUseCase) Execute(ctx context.Context, tradeID, actorID uuid.UUID) (*entity.Trade, error) {
	trade, err := uc.tradeRepo.FindByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if !trade.IsParticipant(actorID) {
		return nil, apperror.ErrNotTradeParticipant
	}
	return trade, nil
}

type ListTradesUseCase struct {
	tradeRepo repository.TradeRepository
}

func NewListTradesUseCase(tradeRepo repository.TradeRepository) *ListTradesUseCase {
	return &ListTradesUseCase{tradeRepo: tradeRepo}
}

// Execute возвращает обмены пользователя, новые первыми.
func (uc *ListTradesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error) {
	return uc.tradeRepo.ListByUser(ctx, userID)
}
