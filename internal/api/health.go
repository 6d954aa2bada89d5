package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/database"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

// Health reports the API as unhealthy only when the database is unreachable.
// Redis is optional.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	dbStatus := "up"
	if err := database.HealthCheck(ctx, h.db); err != nil {
		dbStatus = "down"
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "up"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
