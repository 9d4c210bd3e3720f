package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/http/middleware"
	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// currentUser достаёт ID из контекста. При отсутствии сразу отвечает 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		response.Error(c, apperror.ErrUnauthorized)
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		response.Error(c, apperror.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam разбирает path-параметр. При ошибке отвечает 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid_id", "параметр "+name+" должен быть валидным UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON разбирает тело запроса. При ошибке отвечает 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, apperror.Validation("invalid_request", "некорректные данные запроса"))
		return false
	}
	return true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// pagination читает limit/offset и приводит их к допустимым границам.
func pagination(c *gin.Context) (int, int) {
	limit := parseIntQuery(c, "limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
