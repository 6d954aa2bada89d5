package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/service"
)

// ErrorHandler turns the last error pushed with c.Error into a JSON response.
// A string set as the error's Meta replaces the default message. Panics are
// answered with a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic while handling request",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				abort(c, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		status, message := Classify(ginErr.Err)
		if msg, ok := ginErr.Meta.(string); ok && msg != "" {
			message = msg
		}

		body := gin.H{"success": false, "message": message}
		var ve *service.ValidationError
		if errors.As(ginErr.Err, &ve) && ve.Field != "" {
			body["field"] = ve.Field
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(ginErr.Err),
				zap.Int("status", status),
				zap.String("path", c.Request.URL.Path),
			)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Classify maps a service error to an HTTP status and a client-facing message.
func Classify(err error) (int, string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "Email already in use"
	case errors.Is(err, service.ErrModelTimeout):
		return http.StatusGatewayTimeout, "Nutrition analysis timed out, please try again"
	case errors.Is(err, service.ErrModelUnavailable):
		return http.StatusBadGateway, "Nutrition analysis service is unavailable"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
