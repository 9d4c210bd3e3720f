package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/infrastructure/oauth"
	"github.com/swapo-org/swapo-backend/internal/interface/http/dto"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
	"github.com/swapo-org/swapo-backend/internal/service"
)

const oauthStateTTL = 10 * time.Minute

var errGoogleDisabled = apperror.NewWithReason(apperror.ErrCodeNotFound, "google_disabled", "вход через Google не настроен")

// GoogleOAuth - то, что handler использует от OAuth провайдера.
type GoogleOAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.GoogleUser, error)
}

// AuthHandler предоставляет HTTP слой для регистрации, логина и Google OAuth.
type AuthHandler struct {
	auth        *service.AuthService
	google      GoogleOAuth
	frontendURL string
	secure      bool
}

// NewAuthHandler создаёт хэндлер. google может быть nil, если OAuth не настроен.
func NewAuthHandler(auth *service.AuthService, google GoogleOAuth, frontendURL string, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, google: google, frontendURL: frontendURL, secure: secureCookies}
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAuthResponse(result))
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAuthResponse(result))
}

// Refresh обрабатывает POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pair)
}

// ChangePassword обрабатывает PUT /auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"changed": true})
}

// GoogleLogin обрабатывает GET /auth/google/login: ставит state cookie и
// перенаправляет на страницу согласия Google.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		response.Error(c, errGoogleDisabled)
		return
	}

	state := oauth.NewState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauth.StateCookie, state, int(oauthStateTTL.Seconds()), "/", "", h.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state))
}

// GoogleCallback обрабатывает GET /auth/google/callback и возвращает
// пользователя на фронтенд с токенами во fragment.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		response.Error(c, errGoogleDisabled)
		return
	}

	state, err := c.Cookie(oauth.StateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		response.Error(c, apperror.NewWithReason(apperror.ErrCodeUnauthorized, "invalid_oauth_state", "некорректный параметр state"))
		return
	}
	c.SetCookie(oauth.StateCookie, "", -1, "/", "", h.secure, true)

	profile, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.auth.LoginWithGoogle(c.Request.Context(), service.GoogleIdentity{
		GoogleID:  profile.ID,
		Email:     profile.Email,
		FirstName: profile.GivenName,
		LastName:  profile.FamilyName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", result.TokenPair.AccessToken)
	fragment.Set("refresh_token", result.TokenPair.RefreshToken)
	fragment.Set("expires_in", strconv.FormatInt(result.TokenPair.ExpiresIn, 10))
	fragment.Set("created", strconv.FormatBool(result.Created))

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback#"+fragment.Encode())
}
