package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/swapo-org/swapo-backend/internal/config"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// StateCookie - cookie, в которой хранится state между redirect и callback.
const StateCookie = "oauth_state"

// GoogleUser - профиль из userinfo.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type GoogleProvider struct {
	conf        *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	return newGoogleProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, googleUserInfoURL)
}

func newGoogleProvider(conf *oauth2.Config, userInfoURL string) *GoogleProvider {
	return &GoogleProvider{conf: conf, userInfoURL: userInfoURL}
}

// NewState возвращает случайный state для защиты от CSRF.
func NewState() string {
	return uuid.NewString()
}

// AuthCodeURL - адрес экрана согласия Google.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange меняет code на токен и получает профиль пользователя.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	if code == "" {
		return nil, apperror.Validation("oauth_code_required", "отсутствует code")
	}

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "не удалось обменять code на токен")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oauth: запрос userinfo: %w", err)
	}
	resp, err := p.conf.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить профиль Google")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, fmt.Sprintf("google userinfo вернул %d", resp.StatusCode))
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "некорректный ответ userinfo")
	}
	if user.ID == "" || user.Email == "" {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "профиль Google без id или email")
	}
	return &user, nil
}
