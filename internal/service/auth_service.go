package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/validation"
)

// maxUsernameAttempts ограничивает подбор суффикса для username.
const maxUsernameAttempts = 1000

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9_.]+`)

// AuthService инкапсулирует регистрацию и аутентификацию.
type AuthService struct {
	users        repository.UserRepository
	tokenManager *TokenManager
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type LoginInput struct {
	Email    string
	Password string
}

// GoogleIdentity - данные профиля, полученные от Google.
type GoogleIdentity struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *entity.User
	TokenPair *TokenPair
	Created   bool
}

func NewAuthService(users repository.UserRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{users: users, tokenManager: tokenManager}
}

// Register создаёт пользователя. Без username он выводится из email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("имя", in.FirstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("фамилия", in.LastName); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		generated, err := s.uniqueUsername(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		username = generated
	} else if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	user := entity.NewUser(in.Email, username, in.FirstName, in.LastName)
	user.SetPasswordHash(string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("пользователь зарегистрирован")
	return s.issue(user, true)
}

// Login проверяет учётные данные и возвращает токены.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}
	// Аккаунт, созданный через Google, без пароля войти не может.
	if !user.HasPassword() {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user.ID)
	return s.issue(user, false)
}

// Refresh выпускает новую пару токенов.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}
	return s.tokenManager.GeneratePair(user)
}

// ChangePassword меняет пароль после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return apperror.ErrPasswordNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperror.ErrWrongOldPassword
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}
	user.SetPasswordHash(string(hash))
	return s.users.Update(ctx, user)
}

// LoginWithGoogle находит пользователя по google_id, затем по email
// (и привязывает Google), иначе создаёт нового без пароля.
func (s *AuthService) LoginWithGoogle(ctx context.Context, in GoogleIdentity) (*AuthResult, error) {
	if in.GoogleID == "" || in.Email == "" {
		return nil, apperror.Validation("invalid_google_profile", "профиль Google без id или email")
	}

	created := false
	user, err := s.users.FindByGoogleID(ctx, in.GoogleID)
	switch {
	case err == nil:
	case apperror.IsNotFound(err):
		user, created, err = s.linkOrCreateGoogleUser(ctx, in)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	s.touchLastLogin(ctx, user.ID)
	return s.issue(user, created)
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, in GoogleIdentity) (*entity.User, bool, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		user.LinkGoogle(in.GoogleID)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, false, err
		}
		logger.Log.WithField("user_id", user.ID).Info("google аккаунт привязан к существующему пользователю")
		return user, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}

	username, err := s.uniqueUsername(ctx, in.Email)
	if err != nil {
		return nil, false, err
	}
	user = entity.NewUser(in.Email, username, in.FirstName, in.LastName)
	user.LinkGoogle(in.GoogleID)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": username,
	}).Info("пользователь создан через Google")
	return user, true, nil
}

// uniqueUsername берёт локальную часть email и добавляет счётчик, пока имя занято.
func (s *AuthService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := usernameBase(email)
	candidate := base
	for counter := 1; counter <= maxUsernameAttempts; counter++ {
		exists, err := s.users.ExistsUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
	return base + "_" + uuid.NewString()[:8], nil
}

func usernameBase(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	name := strings.Trim(usernameUnsafe.ReplaceAllString(local, "_"), "_.")
	if len(name) > validation.MaxUsernameLength-4 {
		name = name[:validation.MaxUsernameLength-4]
	}
	if len(name) < validation.MinUsernameLength || unicode.IsDigit(rune(name[0])) {
		name = "user_" + name
	}
	return name
}

func (s *AuthService) issue(user *entity.User, created bool) (*AuthResult, error) {
	pair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, TokenPair: pair, Created: created}, nil
}

// touchLastLogin обновляет last_login_at. Ошибка не прерывает вход.
func (s *AuthService) touchLastLogin(ctx context.Context, userID uuid.UUID) {
	if err := s.users.UpdateLastLogin(ctx, userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("не удалось обновить last_login_at")
	}
}
