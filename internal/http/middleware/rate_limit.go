package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/logger"
)

const rateLimitPrefix = "swapo_limiter"

// NewRateLimitStore возвращает Redis store, если клиент передан, иначе хранилище в памяти.
func NewRateLimitStore(rdb *redis.Client) (limiter.Store, error) {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		}), nil
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		return nil, fmt.Errorf("rate limit: не удалось создать redis store: %w", err)
	}
	return store, nil
}

// RateLimitMiddleware ограничивает количество запросов с одного IP.
// name разделяет счётчики разных групп маршрутов в общем хранилище.
// По умолчанию: 10 запросов в минуту.
func RateLimitMiddleware(store limiter.Store, name string, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(store, limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		key := name + ":" + c.ClientIP()
		lctx, err := instance.Get(c, key)
		if err != nil {
			// Недоступное хранилище лимитов не блокирует запросы.
			logger.Log.WithError(err).Warn("rate limit: ошибка хранилища")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", lctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", lctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", lctx.Reset))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Success: false,
				Error: &response.ErrorInfo{
					Code:    "TOO_MANY_REQUESTS",
					Reason:  "rate_limited",
					Message: "слишком много запросов, попробуйте позже",
				},
			})
			return
		}

		c.Next()
	}
}
