package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Error пишет AppError как есть. Остальные ошибки маскируются в 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Log.WithError(err).WithField("path", c.Request.URL.Path).Error("ошибка обработки запроса")
			message = "внутренняя ошибка сервера"
		}
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Error: &ErrorInfo{
				Code:    string(appErr.Code),
				Reason:  appErr.Reason,
				Message: message,
			},
		})
		return
	}

	logger.Log.WithError(err).WithField("path", c.Request.URL.Path).Error("необработанная ошибка")
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(apperror.ErrCodeInternal),
			Message: "внутренняя ошибка сервера",
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(apperror.ErrCodeBadRequest),
			Message: message,
		},
	})
}

// Abort - то же, что Error, но прерывает цепочку middleware.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
