package block_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/block"
	"github.com/swapo-org/swapo-backend/internal/usecase/usecasetest"
)

func TestBlock_IdempotentAndDirectional(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	bob := store.AddUser("bob", "", "")
	ctx := context.Background()

	blockUser := block.NewBlockUserUseCase(store.BlockRepo(), store.UserRepo())
	first, err := blockUser.Execute(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	second, err := blockUser.Execute(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("repeat block: %v", err)
	}
	if first.ID != second.ID || len(store.Blocks) != 1 {
		t.Error("repeat block must return the existing record")
	}

	isBlocked := block.NewIsBlockedUseCase(store.BlockRepo())
	b, err := isBlocked.Execute(ctx, alice.ID, bob.ID)
	if err != nil || b == nil || b.ID != first.ID {
		t.Errorf("expected block %s, got %v (%v)", first.ID, b, err)
	}
	b, err = isBlocked.Execute(ctx, bob.ID, alice.ID)
	if err != nil || b != nil {
		t.Errorf("reverse direction must not be blocked, got %v (%v)", b, err)
	}

	list, _ := block.NewListBlocksUseCase(store.BlockRepo()).Execute(ctx, alice.ID)
	if len(list) != 1 {
		t.Errorf("expected 1 block, got %d", len(list))
	}
}

func TestBlock_Validation(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	uc := block.NewBlockUserUseCase(store.BlockRepo(), store.UserRepo())

	if _, err := uc.Execute(context.Background(), alice.ID, alice.ID); !errors.Is(err, apperror.ErrSelfBlock) {
		t.Errorf("expected self block, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), alice.ID, uuid.New()); !apperror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUnblock_OwnerOnly(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	bob := store.AddUser("bob", "", "")
	ctx := context.Background()

	b, _ := block.NewBlockUserUseCase(store.BlockRepo(), store.UserRepo()).Execute(ctx, alice.ID, bob.ID)
	unblock := block.NewUnblockUseCase(store.BlockRepo())

	if err := unblock.Execute(ctx, bob.ID, b.ID); !errors.Is(err, apperror.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if err := unblock.Execute(ctx, alice.ID, b.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if len(store.Blocks) != 0 {
		t.Error("block must be removed")
	}
}
