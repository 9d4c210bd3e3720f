package notification_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/notification"
	"github.com/swapo-org/swapo-backend/internal/usecase/usecasetest"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

func seed(store *usecasetest.Store, user *entity.User, count int) {
	for i := 0; i < count; i++ {
		_, _ = store.NotificationRepo().Insert(context.Background(),
			entity.NewNotification(user.ID, valueobject.NotificationNewMessage, "New message from someone"))
	}
}

func TestMarkAllRead_ReturnsCountAndClearsUnread(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "Alice", "Smith")
	bob := store.AddUser("bob", "Bob", "Jones")
	seed(store, alice, 3)
	seed(store, bob, 2)
	ctx := context.Background()

	markAll := notification.NewMarkAllReadUseCase(store.NotificationRepo())
	unread := notification.NewUnreadCountUseCase(store.NotificationRepo())

	count, err := markAll.Execute(ctx, alice.ID)
	if err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 marked, got %d", count)
	}
	if n, _ := unread.Execute(ctx, alice.ID); n != 0 {
		t.Errorf("expected 0 unread, got %d", n)
	}
	if n, _ := unread.Execute(ctx, bob.ID); n != 2 {
		t.Errorf("other user must keep unread, got %d", n)
	}

	again, _ := markAll.Execute(ctx, alice.ID)
	if again != 0 {
		t.Errorf("second call must mark nothing, got %d", again)
	}
}

func TestMarkRead_OwnerOnlyAndIdempotent(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "Alice", "Smith")
	bob := store.AddUser("bob", "Bob", "Jones")
	seed(store, alice, 1)
	ctx := context.Background()
	id := store.Notifications[0].ID

	uc := notification.NewMarkReadUseCase(store.NotificationRepo())

	if _, err := uc.Execute(ctx, bob.ID, id); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if store.Notifications[0].IsRead {
		t.Fatal("foreign call must not mark notification")
	}

	for i := 0; i < 2; i++ {
		n, err := uc.Execute(ctx, alice.ID, id)
		if err != nil {
			t.Fatalf("mark read #%d: %v", i+1, err)
		}
		if !n.IsRead {
			t.Error("expected read")
		}
	}
}

func TestList_UnreadOnlyNewestFirst(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "Alice", "Smith")
	seed(store, alice, 3)
	ctx := context.Background()
	_ = store.NotificationRepo().MarkRead(ctx, store.Notifications[2].ID)

	uc := notification.NewListNotificationsUseCase(store.NotificationRepo())

	all, _ := uc.Execute(ctx, alice.ID, repository.NotificationFilter{})
	if len(all) != 3 || all[0].ID != store.Notifications[2].ID {
		t.Errorf("expected newest first, got %d items", len(all))
	}
	unread, _ := uc.Execute(ctx, alice.ID, repository.NotificationFilter{UnreadOnly: true})
	if len(unread) != 2 {
		t.Errorf("expected 2 unread, got %d", len(unread))
	}
}

func TestAnnounce_DeduplicatedPerText(t *testing.T) {
	store := usecasetest.NewStore()
	for _, name := range []string{"alice", "bob", "carol"} {
		store.AddUser(name, "", "")
	}
	ctx := context.Background()
	uc := notification.NewAnnounceUseCase(store.NotificationRepo(), store.UserRepo())

	created, err := uc.Execute(ctx, "")
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if created != 3 {
		t.Errorf("expected 3 created, got %d", created)
	}
	for _, n := range store.Notifications {
		if n.Type != valueobject.NotificationSystemAlert || n.MessageText != notification.DefaultAnnouncement {
			t.Errorf("unexpected notification %s %q", n.Type, n.MessageText)
		}
	}

	again, _ := uc.Execute(ctx, "  ")
	if again != 0 {
		t.Errorf("repeat with default text must create nothing, got %d", again)
	}

	other, _ := uc.Execute(ctx, "Maintenance tonight")
	if other != 3 {
		t.Errorf("new text must reach everyone, got %d", other)
	}
	if len(store.Notifications) != 6 {
		t.Errorf("expected 6 notifications, got %d", len(store.Notifications))
	}
}

func TestFanout_MessageSent(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "Alice", "Smith")
	bob := store.AddUser("bob", "Bob", "Jones")
	h := notification.NewFanoutHandler(store.NotificationRepo(), store.UserRepo(), store.SkillRepo(), store.ProposalRepo(), store.TradeRepo())

	err := h.Handle(context.Background(), event.MessageSent{MessageID: 42, SenderID: alice.ID, ReceiverID: bob.ID})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	notes := store.NotificationsFor(bob.ID)
	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	n := notes[0]
	if n.Type != valueobject.NotificationNewMessage || n.MessageText != "New message from alice" {
		t.Errorf("unexpected notification %s %q", n.Type, n.MessageText)
	}
	if n.MessageID == nil || *n.MessageID != 42 {
		t.Error("message id must be linked")
	}
	if n.LinkURL == nil || *n.LinkURL != "/app/dashboard/messages" {
		t.Error("unexpected link")
	}
}

func TestFanout_IgnoredEvents(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	bob := store.AddUser("bob", "", "")
	guitar := store.AddSkill("Guitar")
	cooking := store.AddSkill("Cooking")
	h := notification.NewFanoutHandler(store.NotificationRepo(), store.UserRepo(), store.SkillRepo(), store.ProposalRepo(), store.TradeRepo())
	ctx := context.Background()

	// Обмен без предложения: уведомление о старте не отправляется.
	tr := &entity.Trade{ID: uuid.New(), User1ID: alice.ID, User2ID: bob.ID,
		Skill1ID: guitar.ID, Skill2ID: cooking.ID, Status: valueobject.TradeStatusActive}
	_ = store.TradeRepo().Create(ctx, tr)

	events := []event.Event{
		event.ProposalRejected{ProposalID: tr.ID},
		event.TradeCreated{TradeID: tr.ID},
		event.TradeStatusChanged{TradeID: tr.ID, Status: valueobject.TradeStatusCompleted},
	}
	for _, e := range events {
		if err := h.Handle(ctx, e); err != nil {
			t.Errorf("%s: %v", e.EventName(), err)
		}
	}
	if len(store.Notifications) != 0 {
		t.Errorf("expected no notifications, got %d", len(store.Notifications))
	}
}
