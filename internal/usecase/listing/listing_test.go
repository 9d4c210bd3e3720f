package listing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/usecase/listing"
	"github.com/swapo-org/swapo-backend/internal/usecase/usecasetest"
)

func strPtr(s string) *string { return &s }

func TestListingLifecycle(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	bob := store.AddUser("bob", "", "")
	guitar := store.AddSkill("Guitar")
	cooking := store.AddSkill("Cooking")
	chess := store.AddSkill("Chess")
	ctx := context.Background()

	l, err := listing.NewCreateListingUseCase(store.ListingRepo(), store.SkillRepo()).Execute(ctx, listing.CreateListingInput{
		UserID:         alice.ID,
		SkillOfferedID: guitar.ID,
		SkillDesiredID: cooking.ID,
		Title:          "Guitar lessons for cooking",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Status != valueobject.ListingStatusActive || l.SkillOfferedName != "Guitar" {
		t.Errorf("unexpected listing %s %q", l.Status, l.SkillOfferedName)
	}

	update := listing.NewUpdateListingUseCase(store.ListingRepo(), store.SkillRepo())
	if _, err := update.Execute(ctx, bob.ID, l.ID, listing.UpdateListingInput{Title: strPtr("mine now")}); !errors.Is(err, apperror.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}

	updated, err := update.Execute(ctx, alice.ID, l.ID, listing.UpdateListingInput{
		Status:         strPtr("paused"),
		SkillDesiredID: &chess.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != valueobject.ListingStatusPaused || updated.SkillDesiredName != "Chess" {
		t.Errorf("unexpected update %s %q", updated.Status, updated.SkillDesiredName)
	}

	list := listing.NewListListingsUseCase(store.ListingRepo())
	public, _ := list.Execute(ctx, repository.ListingFilter{})
	if len(public) != 0 {
		t.Errorf("paused listing must be hidden by default, got %d", len(public))
	}
	own, _ := list.Execute(ctx, repository.ListingFilter{UserID: &alice.ID})
	if len(own) != 1 {
		t.Errorf("owner filter must show every status, got %d", len(own))
	}

	del := listing.NewDeleteListingUseCase(store.ListingRepo())
	if err := del.Execute(ctx, bob.ID, l.ID); !errors.Is(err, apperror.ErrNotOwner) {
		t.Errorf("expected not owner, got %v", err)
	}
	if err := del.Execute(ctx, alice.ID, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := listing.NewGetListingUseCase(store.ListingRepo()).Execute(ctx, l.ID); !apperror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateListing_Validation(t *testing.T) {
	store := usecasetest.NewStore()
	alice := store.AddUser("alice", "", "")
	guitar := store.AddSkill("Guitar")
	uc := listing.NewCreateListingUseCase(store.ListingRepo(), store.SkillRepo())
	ctx := context.Background()

	_, err := uc.Execute(ctx, listing.CreateListingInput{UserID: alice.ID, SkillOfferedID: guitar.ID, SkillDesiredID: uuid.New(), Title: "x"})
	if !errors.Is(err, apperror.ErrInvalidSkill) {
		t.Errorf("expected invalid skill, got %v", err)
	}
	_, err = uc.Execute(ctx, listing.CreateListingInput{UserID: alice.ID, SkillOfferedID: guitar.ID, SkillDesiredID: guitar.ID, Title: "  "})
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation for title, got %v", err)
	}

	update := listing.NewUpdateListingUseCase(store.ListingRepo(), store.SkillRepo())
	l, _ := uc.Execute(ctx, listing.CreateListingInput{UserID: alice.ID, SkillOfferedID: guitar.ID, SkillDesiredID: guitar.ID, Title: "ok"})
	if _, err := update.Execute(ctx, alice.ID, l.ID, listing.UpdateListingInput{Status: strPtr("archived")}); !apperror.IsValidation(err) {
		t.Errorf("expected validation for status, got %v", err)
	}
}
