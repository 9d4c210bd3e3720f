package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "users_email_key"})

	assert.True(t, isUniqueViolation(err, ""))
	assert.True(t, isUniqueViolation(err, "users_email_key"))
	assert.False(t, isUniqueViolation(err, "users_username_key"))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("boom"), ""))
}

func TestMapUserWriteError(t *testing.T) {
	assert.ErrorIs(t, mapUserWriteError(&pq.Error{Code: "23505", Constraint: "users_email_key"}, "x"), apperror.ErrEmailTaken)
	assert.ErrorIs(t, mapUserWriteError(&pq.Error{Code: "23505", Constraint: "users_username_key"}, "x"), apperror.ErrUsernameTaken)
	assert.True(t, apperror.IsAlreadyExists(mapUserWriteError(&pq.Error{Code: "23505", Constraint: "users_google_id_key"}, "x")))

	err := mapUserWriteError(errors.New("connection reset"), "не удалось создать пользователя")
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeDatabaseError, appErr.Code)
}

func TestLimitOrDefault(t *testing.T) {
	assert.Equal(t, 50, limitOrDefault(0))
	assert.Equal(t, 50, limitOrDefault(-1))
	assert.Equal(t, 50, limitOrDefault(1000))
	assert.Equal(t, 20, limitOrDefault(20))
}

func TestTradeRow_ToEntity(t *testing.T) {
	proposalID := uuid.New()
	row := tradeRow{ID: uuid.New(), ProposalID: &proposalID, Status: "in_progress", TermsAgreed: "Trade agreement"}

	trade := row.toEntity()

	assert.Equal(t, valueobject.TradeStatusInProgress, trade.Status)
	assert.Equal(t, &proposalID, trade.ProposalID)
	assert.Nil(t, trade.ActualCompletionDate)
}

func TestProposalRow_ToEntity(t *testing.T) {
	row := proposalRow{ID: uuid.New(), Status: "rejected"}
	assert.Equal(t, valueobject.ProposalStatusRejected, row.toEntity().Status)
}
