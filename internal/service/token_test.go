package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	user := entity.NewUser("a@example.com", "alice", "", "")

	pair, err := tm.GeneratePair(user)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	id, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	id, err = tm.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := entity.NewUser("a@example.com", "alice", "", "")

	expired := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	pair, err := expired.GeneratePair(user)
	require.NoError(t, err)
	_, err = tm.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	_, err = tm.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	// Токен без корректного subject.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "nope",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("access-secret"))
	require.NoError(t, err)
	_, err = tm.ParseAccess(raw)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	// Другой алгоритм подписи не принимается.
	none, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject: user.ID.String(),
	}).SignedString([]byte("access-secret"))
	require.NoError(t, err)
	_, err = tm.ParseAccess(none)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
