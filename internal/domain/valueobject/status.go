package valueobject

import "github.com/swapo-org/swapo-backend/internal/pkg/apperror"

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// IsTerminal - из принятого и отклонённого предложения переходов нет.
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusRejected
}

func NewProposalStatus(status string) (ProposalStatus, error) {
	s := ProposalStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid_proposal_status", "некорректный статус предложения")
	}
	return s, nil
}

type TradeStatus string

const (
	TradeStatusActive     TradeStatus = "active"
	TradeStatusInProgress TradeStatus = "in_progress"
	TradeStatusCompleted  TradeStatus = "completed"
)

func (s TradeStatus) IsValid() bool {
	switch s {
	case TradeStatusActive, TradeStatusInProgress, TradeStatusCompleted:
		return true
	}
	return false
}

// IsOngoing - обмен идёт (ещё не завершён).
func (s TradeStatus) IsOngoing() bool {
	return s == TradeStatusActive || s == TradeStatusInProgress
}

// CanTransitionTo - статус обмена только движется вперёд.
func (s TradeStatus) CanTransitionTo(next TradeStatus) bool {
	transitions := map[TradeStatus][]TradeStatus{
		TradeStatusActive:     {TradeStatusInProgress, TradeStatusCompleted},
		TradeStatusInProgress: {TradeStatusCompleted},
		TradeStatusCompleted:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewTradeStatus(status string) (TradeStatus, error) {
	s := TradeStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid_trade_status", "некорректный статус обмена")
	}
	return s, nil
}

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusPaused ListingStatus = "paused"
	ListingStatusClosed ListingStatus = "closed"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusPaused, ListingStatusClosed:
		return true
	}
	return false
}

func NewListingStatus(status string) (ListingStatus, error) {
	s := ListingStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid_listing_status", "некорректный статус объявления")
	}
	return s, nil
}
