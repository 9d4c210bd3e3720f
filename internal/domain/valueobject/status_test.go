package valueobject

import "testing"

func TestTradeStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TradeStatus
		want     bool
	}{
		{TradeStatusActive, TradeStatusInProgress, true},
		{TradeStatusActive, TradeStatusCompleted, true},
		{TradeStatusInProgress, TradeStatusCompleted, true},
		{TradeStatusInProgress, TradeStatusActive, false},
		{TradeStatusCompleted, TradeStatusActive, false},
		{TradeStatusCompleted, TradeStatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestProposalStatus_IsTerminal(t *testing.T) {
	if ProposalStatusPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	if !ProposalStatusAccepted.IsTerminal() || !ProposalStatusRejected.IsTerminal() {
		t.Error("accepted and rejected must be terminal")
	}
}

func TestParsers(t *testing.T) {
	if _, err := NewProposalStatus("withdrawn"); err == nil {
		t.Error("expected error for unknown proposal status")
	}
	if _, err := NewTradeStatus("cancelled"); err == nil {
		t.Error("expected error for unknown trade status")
	}
	if _, err := NewSkillType("teaching"); err == nil {
		t.Error("expected error for unknown skill type")
	}
	if nt, err := NewNotificationType("trade_active"); err != nil || nt != NotificationTradeActive {
		t.Errorf("unexpected result: %v %v", nt, err)
	}
}
