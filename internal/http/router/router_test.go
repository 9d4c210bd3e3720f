package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapo-org/swapo-backend/internal/config"
	"github.com/swapo-org/swapo-backend/internal/http/middleware"
	"github.com/swapo-org/swapo-backend/internal/interface/http/handler"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Silence()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := middleware.NewRateLimitStore(nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}
	h := Handlers{
		Health:       handler.NewHealthHandler(nil),
		Auth:         handler.NewAuthHandler(nil, nil, "http://localhost:3000", false),
		Profile:      &handler.ProfileHandler{},
		Skill:        &handler.SkillHandler{},
		Listing:      &handler.ListingHandler{},
		Block:        &handler.BlockHandler{},
		Proposal:     &handler.ProposalHandler{},
		Trade:        &handler.TradeHandler{},
		Message:      &handler.MessageHandler{},
		Notification: &handler.NotificationHandler{},
	}
	return SetupRouter(cfg, h, Options{
		Tokens:         service.NewTokenManager("a", "r", time.Minute, time.Hour),
		RateLimitStore: store,
		MediaRoot:      t.TempDir(),
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	routes := [][2]string{
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodPost, "/api/v1/proposals"},
		{http.MethodPost, "/api/v1/proposals/00000000-0000-0000-0000-000000000001/accept"},
		{http.MethodPost, "/api/v1/trades/00000000-0000-0000-0000-000000000001/complete"},
		{http.MethodGet, "/api/v1/notifications/unread-count"},
		{http.MethodPut, "/api/v1/auth/password"},
	}
	for _, route := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route[0], route[1], nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route[1])
	}
}

func TestHealthAndGoogleDisabled(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "google_disabled")
}

func TestAuthRoutesRateLimited(t *testing.T) {
	r := newTestRouter(t)

	var last int
	for i := 0; i < authRateLimit+1; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil))
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
