package trade_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/infrastructure/eventbus"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/notification"
	"github.com/swapo-org/swapo-backend/internal/usecase/trade"
	"github.com/swapo-org/swapo-backend/internal/usecase/usecasetest"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

type fixture struct {
	store    *usecasetest.Store
	fanout   *notification.FanoutHandler
	events   *usecasetest.Publisher
	start    *trade.StartTradeUseCase
	complete *trade.CompleteTradeUseCase
	trade    *entity.Trade
	alice    *entity.User
	bob      *entity.User
}

// newFixture создаёт обмен Guitar/Cooking между alice и bob в статусе active.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := usecasetest.NewStore()
	fanout := notification.NewFanoutHandler(
		store.NotificationRepo(), store.UserRepo(), store.SkillRepo(), store.ProposalRepo(), store.TradeRepo(),
	)
	events := &usecasetest.Publisher{Next: eventbus.NewDispatcher(fanout)}
	tx := store.TxManager()

	alice := store.AddUser("alice", "Alice", "Smith")
	bob := store.AddUser("bob", "Bob", "Jones")
	guitar := store.AddSkill("Guitar")
	cooking := store.AddSkill("Cooking")

	p, err := entity.NewTradeProposal(alice.ID, bob.ID, guitar.ID, cooking.ID, "")
	if err != nil {
		t.Fatalf("proposal: %v", err)
	}
	if err := p.Accept(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_ = store.ProposalRepo().Create(context.Background(), p)

	tr, err := trade.NewMaterializeTradeUseCase(store.TradeRepo()).Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}

	return &fixture{
		store:    store,
		fanout:   fanout,
		events:   events,
		start:    trade.NewStartTradeUseCase(tx, store.TradeRepo(), events),
		complete: trade.NewCompleteTradeUseCase(tx, store.TradeRepo(), events),
		trade:    tr,
		alice:    alice,
		bob:      bob,
	}
}

func TestMaterialize_SecondCallIsConflict(t *testing.T) {
	f := newFixture(t)
	p, _ := f.store.ProposalRepo().FindByID(context.Background(), *f.trade.ProposalID)

	_, err := trade.NewMaterializeTradeUseCase(f.store.TradeRepo()).Execute(context.Background(), p)
	if !errors.Is(err, apperror.ErrProposalAlreadyAccepted) {
		t.Fatalf("expected already accepted, got %v", err)
	}
	if len(f.store.Trades) != 1 {
		t.Errorf("expected one trade, got %d", len(f.store.Trades))
	}
}

func TestStart_NotifiesBothSides(t *testing.T) {
	f := newFixture(t)

	tr, err := f.start.Execute(context.Background(), f.trade.ID, f.bob.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if tr.Status != valueobject.TradeStatusInProgress {
		t.Errorf("expected in_progress, got %s", tr.Status)
	}

	bobNotes := f.store.NotificationsFor(f.bob.ID)
	aliceNotes := f.store.NotificationsFor(f.alice.ID)
	if len(bobNotes) != 1 || len(aliceNotes) != 1 {
		t.Fatalf("expected one trade_active per side, got bob=%d alice=%d", len(bobNotes), len(aliceNotes))
	}
	if bobNotes[0].Type != valueobject.NotificationTradeActive {
		t.Errorf("expected trade_active, got %s", bobNotes[0].Type)
	}
	if bobNotes[0].MessageText != "Trade with Alice Smith is now in_progress: Guitar ↔ Cooking" {
		t.Errorf("unexpected text %q", bobNotes[0].MessageText)
	}
	if f.store.Notifications[0].UserID != f.bob.ID {
		t.Error("user2 must be notified first")
	}
}

func TestTradeActive_DeduplicatedPerTrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.start.Execute(ctx, f.trade.ID, f.alice.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Повторная доставка того же события, как при ретрае очереди.
	ev := event.TradeStatusChanged{TradeID: f.trade.ID, Status: valueobject.TradeStatusInProgress}
	if err := f.fanout.Handle(ctx, ev); err != nil {
		t.Fatalf("redeliver: %v", err)
	}

	if n := len(f.store.NotificationsFor(f.alice.ID)); n != 1 {
		t.Errorf("expected a single trade_active for alice, got %d", n)
	}
	if n := len(f.store.NotificationsFor(f.bob.ID)); n != 1 {
		t.Errorf("expected a single trade_active for bob, got %d", n)
	}
}

func TestComplete_TwiceKeepsCompletionDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.complete.Execute(ctx, f.trade.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if first.ActualCompletionDate == nil {
		t.Fatal("completion date must be set")
	}

	_, err = f.complete.Execute(ctx, f.trade.ID, f.bob.ID)
	if !errors.Is(err, apperror.ErrTradeAlreadyCompleted) {
		t.Fatalf("expected already completed, got %v", err)
	}

	stored, _ := f.store.TradeRepo().FindByID(ctx, f.trade.ID)
	if !stored.ActualCompletionDate.Equal(*first.ActualCompletionDate) {
		t.Error("completion date must not change")
	}

	completed := 0
	for _, n := range f.store.Notifications {
		if n.Type == valueobject.NotificationTradeCompleted {
			completed++
		}
	}
	if completed != 2 {
		t.Errorf("expected trade_completed for both sides once, got %d", completed)
	}
}

func TestStart_AfterCompleteIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.complete.Execute(ctx, f.trade.ID, f.alice.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.start.Execute(ctx, f.trade.ID, f.alice.ID); !apperror.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestTransition_OnlyParticipants(t *testing.T) {
	f := newFixture(t)
	stranger := f.store.AddUser("carol", "", "")

	if _, err := f.start.Execute(context.Background(), f.trade.ID, stranger.ID); !errors.Is(err, apperror.ErrNotTradeParticipant) {
		t.Errorf("expected not participant, got %v", err)
	}
	if _, err := f.complete.Execute(context.Background(), f.trade.ID, stranger.ID); !errors.Is(err, apperror.ErrNotTradeParticipant) {
		t.Errorf("expected not participant, got %v", err)
	}
	if len(f.events.Events) != 0 {
		t.Errorf("no events expected, got %v", f.events.Names())
	}
}

func TestGetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stranger := f.store.AddUser("dave", "", "")

	get := trade.NewGetTradeUseCase(f.store.TradeRepo())
	if _, err := get.Execute(ctx, f.trade.ID, f.bob.ID); err != nil {
		t.Errorf("participant must see trade: %v", err)
	}
	if _, err := get.Execute(ctx, f.trade.ID, stranger.ID); !apperror.IsForbidden(err) {
		t.Errorf("expected forbidden, got %v", err)
	}

	list := trade.NewListTradesUseCase(f.store.TradeRepo())
	mine, _ := list.Execute(ctx, f.alice.ID)
	theirs, _ := list.Execute(ctx, f.bob.ID)
	others, _ := list.Execute(ctx, stranger.ID)
	if len(mine) != 1 || len(theirs) != 1 || len(others) != 0 {
		t.Errorf("unexpected counts alice=%d bob=%d stranger=%d", len(mine), len(theirs), len(others))
	}
}

func TestStart_PublishOutlivesRequestContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := f.start.Execute(ctx, f.trade.ID, f.alice.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()

	if f.events.Ctx == nil || f.events.Ctx.Err() != nil {
		t.Errorf("publish context must survive request cancel, got %v", f.events.Ctx)
	}
}
