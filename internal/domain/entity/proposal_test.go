package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

func newPendingProposal(t *testing.T, message string) *TradeProposal {
	t.Helper()
	p, err := NewTradeProposal(uuid.New(), uuid.New(), uuid.New(), uuid.New(), message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestNewTradeProposal_SelfProposal(t *testing.T) {
	user := uuid.New()
	_, err := NewTradeProposal(user, user, uuid.New(), uuid.New(), "")
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewTradeProposal_MissingSkill(t *testing.T) {
	_, err := NewTradeProposal(uuid.New(), uuid.New(), uuid.Nil, uuid.New(), "")
	if !errors.Is(err, apperror.ErrInvalidSkill) {
		t.Fatalf("expected invalid skill, got %v", err)
	}
}

func TestTradeProposal_AcceptTerminal(t *testing.T) {
	p := newPendingProposal(t, "hi")
	created := p.LastStatusUpdate

	if err := p.Accept(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != valueobject.ProposalStatusAccepted {
		t.Errorf("expected accepted, got %s", p.Status)
	}
	if p.LastStatusUpdate.Before(created) {
		t.Error("last status update must move forward")
	}

	if err := p.Accept(); !errors.Is(err, apperror.ErrProposalAlreadyAccepted) {
		t.Errorf("expected already accepted, got %v", err)
	}
	if err := p.Reject(); !errors.Is(err, apperror.ErrProposalAlreadyAccepted) {
		t.Errorf("expected already accepted on reject, got %v", err)
	}
	if p.Status != valueobject.ProposalStatusAccepted {
		t.Errorf("status must stay accepted, got %s", p.Status)
	}
}

func TestTradeProposal_RejectTerminal(t *testing.T) {
	p := newPendingProposal(t, "")

	if err := p.Reject(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Reject(); !errors.Is(err, apperror.ErrProposalAlreadyRejected) {
		t.Errorf("expected already rejected, got %v", err)
	}
	if err := p.Accept(); !errors.Is(err, apperror.ErrProposalAlreadyRejected) {
		t.Errorf("expected already rejected on accept, got %v", err)
	}
}

func TestNewTradeFromProposal_Mapping(t *testing.T) {
	p := newPendingProposal(t, "")
	if _, err := NewTradeFromProposal(p); !apperror.IsConflict(err) {
		t.Fatalf("pending proposal must not materialize, got %v", err)
	}

	_ = p.Accept()
	trade, err := NewTradeFromProposal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trade.User1ID != p.ProposerID || trade.User2ID != p.RecipientID {
		t.Error("users must map proposer->user1, recipient->user2")
	}
	if trade.Skill1ID != p.SkillOfferedID || trade.Skill2ID != p.SkillDesiredID {
		t.Error("skills must map offered->skill1, desired->skill2")
	}
	if trade.TermsAgreed != DefaultTermsAgreed {
		t.Errorf("expected default terms, got %q", trade.TermsAgreed)
	}
	if trade.Status != valueobject.TradeStatusActive {
		t.Errorf("expected active, got %s", trade.Status)
	}
	if trade.ProposalID == nil || *trade.ProposalID != p.ID {
		t.Error("trade must reference its proposal")
	}
}

func TestTrade_CompleteTwice(t *testing.T) {
	p := newPendingProposal(t, "Guitar for cooking")
	_ = p.Accept()
	trade, _ := NewTradeFromProposal(p)

	if trade.TermsAgreed != "Guitar for cooking" {
		t.Errorf("expected proposal message as terms, got %q", trade.TermsAgreed)
	}

	if err := trade.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	completedAt := *trade.ActualCompletionDate

	if err := trade.Complete(); !errors.Is(err, apperror.ErrTradeAlreadyCompleted) {
		t.Errorf("expected already completed, got %v", err)
	}
	if !trade.ActualCompletionDate.Equal(completedAt) {
		t.Error("completion date must not change on second call")
	}
	if err := trade.Start(); !errors.Is(err, apperror.ErrTradeAlreadyCompleted) {
		t.Errorf("expected already completed on start, got %v", err)
	}
}

func TestTrade_StartOnlyFromActive(t *testing.T) {
	trade := &Trade{Status: valueobject.TradeStatusActive}

	if err := trade.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := trade.Start(); !errors.Is(err, apperror.ErrTradeInvalidTransition) {
		t.Errorf("expected invalid transition, got %v", err)
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := NewUser("Ann@Example.com", "ann", "", "")
	if u.DisplayName() != "ann" {
		t.Errorf("expected username fallback, got %q", u.DisplayName())
	}
	if u.Email != "ann@example.com" {
		t.Errorf("email must be lower-cased, got %q", u.Email)
	}

	u.FirstName, u.LastName = "Ann", "Lee"
	if u.DisplayName() != "Ann Lee" {
		t.Errorf("expected full name, got %q", u.DisplayName())
	}
}
