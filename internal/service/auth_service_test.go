package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

func TestRegister_GeneratesUniqueUsername(t *testing.T) {
	svc, store, tokens := newTestAuth()
	store.AddUser("alice", "", "")
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:     "Alice@Mail.com",
		Password:  "Password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "alice1", result.User.Username)
	assert.Equal(t, "alice@mail.com", result.User.Email)
	require.NotNil(t, result.User.PasswordHash)
	assert.NotEqual(t, "Password123", *result.User.PasswordHash)

	userID, err := tokens.ParseAccess(result.TokenPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestRegister_Errors(t *testing.T) {
	svc, _, _ := newTestAuth()
	ctx := context.Background()
	in := RegisterInput{Email: "bob@example.com", Password: "Password123", Username: "bob"}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, apperror.ErrEmailTaken)

	_, err = svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "short"})
	assert.Equal(t, "weak_password", apperror.ReasonOf(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "password123"})
	assert.Equal(t, "weak_password", apperror.ReasonOf(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "other@example.com", Password: "Password123", Username: "9lives"})
	assert.Equal(t, "invalid_username", apperror.ReasonOf(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "broken", Password: "Password123"})
	assert.Equal(t, "invalid_email", apperror.ReasonOf(err))
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuth()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "carol@example.com", Password: "Password123"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginInput{Email: " carol@example.com ", Password: "Password123"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)

	_, err = svc.Login(ctx, LoginInput{Email: "carol@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "Password123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLogin_DisabledAndGoogleOnly(t *testing.T) {
	svc, store, _ := newTestAuth()
	ctx := context.Background()

	google, err := svc.LoginWithGoogle(ctx, GoogleIdentity{GoogleID: "g-1", Email: "dave@example.com"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, LoginInput{Email: "dave@example.com", Password: "anything123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	store.Users[google.User.ID].IsActive = false
	_, err = svc.LoginWithGoogle(ctx, GoogleIdentity{GoogleID: "g-1", Email: "dave@example.com"})
	assert.ErrorIs(t, err, apperror.ErrAccountDisabled)
}

func TestRefresh(t *testing.T) {
	svc, store, _ := newTestAuth()
	ctx := context.Background()
	result, err := svc.Register(ctx, RegisterInput{Email: "erin@example.com", Password: "Password123"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, result.TokenPair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, result.TokenPair.RefreshToken, pair.RefreshToken)

	// Access-токен не подходит для обновления.
	_, err = svc.Refresh(ctx, result.TokenPair.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	delete(store.Users, result.User.ID)
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuth()
	ctx := context.Background()
	result, err := svc.Register(ctx, RegisterInput{Email: "frank@example.com", Password: "Password123"})
	require.NoError(t, err)
	id := result.User.ID

	assert.ErrorIs(t, svc.ChangePassword(ctx, id, "not-it", "NewPassword1"), apperror.ErrWrongOldPassword)
	err = svc.ChangePassword(ctx, id, "Password123", "short")
	assert.Equal(t, "weak_password", apperror.ReasonOf(err))

	require.NoError(t, svc.ChangePassword(ctx, id, "Password123", "NewPassword1"))
	_, err = svc.Login(ctx, LoginInput{Email: "frank@example.com", Password: "NewPassword1"})
	assert.NoError(t, err)

	google, err := svc.LoginWithGoogle(ctx, GoogleIdentity{GoogleID: "g-2", Email: "gina@example.com"})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ChangePassword(ctx, google.User.ID, "", "NewPassword1"), apperror.ErrPasswordNotSet)
}

func TestLoginWithGoogle_LinksByEmail(t *testing.T) {
	svc, store, _ := newTestAuth()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterInput{Email: "hank@example.com", Password: "Password123"})
	require.NoError(t, err)

	result, err := svc.LoginWithGoogle(ctx, GoogleIdentity{GoogleID: "g-3", Email: "hank@example.com"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, registered.User.ID, result.User.ID)

	stored := store.Users[registered.User.ID]
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "g-3", *stored.GoogleID)
	assert.True(t, stored.HasPassword())
}

func TestLoginWithGoogle_CreatesUser(t *testing.T) {
	svc, store, _ := newTestAuth()
	ctx := context.Background()
	store.AddUser("ivy", "", "")
	store.AddUser("ivy1", "", "")

	identity := GoogleIdentity{GoogleID: "g-4", Email: "ivy@gmail.com", FirstName: "Ivy", LastName: "Lee"}
	result, err := svc.LoginWithGoogle(ctx, identity)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "ivy2", result.User.Username)
	assert.Equal(t, "Ivy", result.User.FirstName)
	assert.False(t, result.User.HasPassword())

	again, err := svc.LoginWithGoogle(ctx, identity)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, result.User.ID, again.User.ID)

	_, err = svc.LoginWithGoogle(ctx, GoogleIdentity{GoogleID: "g-5"})
	assert.Equal(t, "invalid_google_profile", apperror.ReasonOf(err))
}

func TestUsernameBase(t *testing.T) {
	assert.Equal(t, "john.doe", usernameBase("John.Doe@example.com"))
	assert.Equal(t, "a_b", usernameBase("a+b@example.com"))
	assert.Equal(t, "user_42", usernameBase("42@example.com"))
	assert.Equal(t, "user_x", usernameBase("x@example.com"))
}
