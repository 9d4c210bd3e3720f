package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// ContextUserIDKey - ключ gin.Context с ID авторизованного пользователя.
const ContextUserIDKey = "userID"

// AccessTokenParser проверяет access токен и возвращает ID пользователя.
type AccessTokenParser interface {
	ParseAccess(token string) (uuid.UUID, error)
}

// AuthMiddleware проверяет JWT access токен.
func AuthMiddleware(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.Abort(c, apperror.ErrUnauthorized)
			return
		}

		userID, err := tokens.ParseAccess(strings.TrimSpace(raw))
		if err != nil || userID == uuid.Nil {
			response.Abort(c, apperror.ErrInvalidToken)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
