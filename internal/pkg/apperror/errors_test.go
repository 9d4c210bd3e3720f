package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeNotFound:      http.StatusNotFound,
		ErrCodeUnauthorized:  http.StatusUnauthorized,
		ErrCodeForbidden:     http.StatusForbidden,
		ErrCodeValidation:    http.StatusBadRequest,
		ErrCodeConflict:      http.StatusBadRequest,
		ErrCodeAlreadyExists: http.StatusConflict,
		ErrCodeDatabaseError: http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, New(code, "x").HTTPStatus, string(code))
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("usecase: %w", ErrProposalAlreadyAccepted)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, ErrProposalAlreadyAccepted))
	assert.False(t, errors.Is(wrapped, ErrProposalAlreadyRejected))
	assert.Equal(t, "proposal_already_accepted", ReasonOf(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrCodeDatabaseError, "не удалось сохранить")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "", ReasonOf(errors.New("plain")))
}
