package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/service"
)

// currentUser returns the authenticated user or records ErrUnauthorized.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(service.ErrUnauthorized).SetMeta("User not authenticated")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id route parameter. A malformed id is reported as
// notFoundMessage since no such record can exist.
func pathID(c *gin.Context, notFoundMessage string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(service.ErrNotFound).SetMeta(notFoundMessage)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back when it is absent.
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: key, Message: key + " must be an integer"})
		return 0, false
	}
	return n, true
}

func invalidBody(c *gin.Context) {
	_ = c.Error(&service.ValidationError{Message: "Invalid request body"})
}

// fail records err. notFoundMessage replaces the default message when err is
// ErrNotFound.
func fail(c *gin.Context, err error, notFoundMessage string) {
	ginErr := c.Error(err)
	if notFoundMessage != "" && errors.Is(err, service.ErrNotFound) {
		ginErr.SetMeta(notFoundMessage)
	}
}
