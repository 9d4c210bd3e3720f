package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/logger"
)

// FanoutHandler превращает доменные события в строки notifications.
type FanoutHandler struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	skillRepo        repository.SkillRepository
	proposalRepo     repository.ProposalRepository
	tradeRepo        repository.TradeRepository
}

func NewFanoutHandler(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	proposalRepo repository.ProposalRepository,
	tradeRepo repository.TradeRepository,
) *FanoutHandler {
	return &FanoutHandler{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		skillRepo:        skillRepo,
		proposalRepo:     proposalRepo,
		tradeRepo:        tradeRepo,
	}
}

func (h *FanoutHandler) Handle(ctx context.Context, e event.Event) error {
	switch ev := e.(type) {
	case event.MessageSent:
		return h.onMessageSent(ctx, ev)
	case event.ProposalCreated:
		return h.onProposalCreated(ctx, ev)
	case event.ProposalAccepted:
		return h.onProposalAccepted(ctx, ev)
	case event.TradeCreated:
		return h.onTradeCreated(ctx, ev)
	case event.TradeStatusChanged:
		return h.onTradeStatusChanged(ctx, ev)
	case event.TradeCompleted:
		return h.onTradeCompleted(ctx, ev)
	}
	// ProposalRejected и прочие события уведомлений не порождают.
	return nil
}

func (h *FanoutHandler) onMessageSent(ctx context.Context, ev event.MessageSent) error {
	sender, err := h.userRepo.FindByID(ctx, ev.SenderID)
	if err != nil {
		return err
	}
	n := entity.NewNotification(ev.ReceiverID, valueobject.NotificationNewMessage, newMessageText(sender)).
		WithMessage(ev.MessageID).
		WithLink(messagesLink)
	return h.insert(ctx, n)
}

func (h *FanoutHandler) onProposalCreated(ctx context.Context, ev event.ProposalCreated) error {
	p, err := h.proposalRepo.FindByID(ctx, ev.ProposalID)
	if err != nil {
		return err
	}
	proposer, err := h.userRepo.FindByID(ctx, p.ProposerID)
	if err != nil {
		return err
	}
	offered, desired, err := h.skillPair(ctx, p.SkillOfferedID, p.SkillDesiredID)
	if err != nil {
		return err
	}

	n := entity.NewNotification(p.RecipientID, valueobject.NotificationTradeProposal, proposalCreatedText(proposer, offered, desired)).
		WithProposal(p.ID).
		WithLink(proposalLink(p.ID))
	return h.insert(ctx, n)
}

// onProposalAccepted уведомляет инициатора. Вместе с TradeCreated инициатор
// получает два уведомления trade_accepted на одно принятие.
func (h *FanoutHandler) onProposalAccepted(ctx context.Context, ev event.ProposalAccepted) error {
	p, err := h.proposalRepo.FindByID(ctx, ev.ProposalID)
	if err != nil {
		return err
	}
	recipient, err := h.userRepo.FindByID(ctx, p.RecipientID)
	if err != nil {
		return err
	}

	n := entity.NewNotification(p.ProposerID, valueobject.NotificationTradeAccepted, proposalAcceptedText(recipient)).
		WithProposal(p.ID).
		WithLink(proposalLink(p.ID))
	return h.insert(ctx, n)
}

func (h *FanoutHandler) onTradeCreated(ctx context.Context, ev event.TradeCreated) error {
	tc, err := h.loadTrade(ctx, ev.TradeID)
	if err != nil {
		return err
	}
	if tc.trade.ProposalID == nil {
		return nil
	}

	for _, side := range tc.sides() {
		n := entity.NewNotification(side.user, valueobject.NotificationTradeAccepted, tradeStartedText(side.other, tc.skill1, tc.skill2)).
			WithTrade(tc.trade.ID).
			WithLink(tradeLink(tc.trade.ID))
		if err := h.insert(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (h *FanoutHandler) onTradeStatusChanged(ctx context.Context, ev event.TradeStatusChanged) error {
	if !ev.Status.IsOngoing() {
		return nil
	}
	tc, err := h.loadTrade(ctx, ev.TradeID)
	if err != nil {
		return err
	}

	for _, side := range tc.sides() {
		n := entity.NewNotification(side.user, valueobject.NotificationTradeActive, tradeStatusText(side.other, ev.Status, tc.skill1, tc.skill2)).
			WithTrade(tc.trade.ID).
			WithLink(tradeLink(tc.trade.ID))
		if err := h.insert(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (h *FanoutHandler) onTradeCompleted(ctx context.Context, ev event.TradeCompleted) error {
	tc, err := h.loadTrade(ctx, ev.TradeID)
	if err != nil {
		return err
	}

	for _, side := range tc.sides() {
		n := entity.NewNotification(side.user, valueobject.NotificationTradeCompleted, tradeCompletedText(side.other, tc.skill1, tc.skill2)).
			WithTrade(tc.trade.ID).
			WithLink(tradeLink(tc.trade.ID))
		if err := h.insert(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (h *FanoutHandler) insert(ctx context.Context, n *entity.Notification) error {
	created, err := h.notificationRepo.Insert(ctx, n)
	if err != nil {
		return err
	}
	if !created {
		logger.Log.WithFields(logrus.Fields{
			"user_id": n.UserID,
			"type":    n.Type,
		}).Debug("уведомление уже существует, пропускаем")
	}
	return nil
}

func (h *FanoutHandler) skillPair(ctx context.Context, firstID, secondID uuid.UUID) (*entity.Skill, *entity.Skill, error) {
	first, err := h.skillRepo.FindByID(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := h.skillRepo.FindByID(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

type tradeContext struct {
	trade          *entity.Trade
	user1, user2   *entity.User
	skill1, skill2 *entity.Skill
}

type tradeSide struct {
	user  uuid.UUID
	other *entity.User
}

// sides - получатели в порядке user2, затем user1.
func (tc *tradeContext) sides() []tradeSide {
	return []tradeSide{
		{user: tc.user2.ID, other: tc.user1},
		{user: tc.user1.ID, other: tc.user2},
	}
}

func (h *FanoutHandler) loadTrade(ctx context.Context, tradeID uuid.UUID) (*tradeContext, error) {
	trade, err := h.tradeRepo.FindByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	user1, err := h.userRepo.FindByID(ctx, trade.User1ID)
	if err != nil {
		return nil, err
	}
	user2, err := h.userRepo.FindByID(ctx, trade.User2ID)
	if err != nil {
		return nil, err
	}
	skill1, skill2, err := h.skillPair(ctx, trade.Skill1ID, trade.Skill2ID)
	if err != nil {
		return nil, err
	}
	return &tradeContext{trade: trade, user1: user1, user2: user2, skill1: skill1, skill2: skill2}, nil
}
