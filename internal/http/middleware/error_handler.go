package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/interface/http/response"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

// ErrorHandler отвечает за ошибки, добавленные через c.Error, если handler
// сам ничего не записал. Внутренние ошибки маскируются в response.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logger.Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Warn("ошибка запроса")

		response.Error(c, err.Err)
	}
}

// Recovery перехватывает панику в handler и отвечает 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.WithFields(logrus.Fields{
			"panic":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("паника при обработке запроса")
		response.Abort(c, apperror.New(apperror.ErrCodeInternal, "panic"))
	})
}
