package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/logger"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed windows stored in Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewAnalysisRateLimiter limits health analysis requests per user per hour.
func NewAnalysisRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     limit,
		KeyPrefix: "rate_limit:health_analysis",
	})
}

// Allow records one request for the authenticated user and reports whether
// the handler may continue. When it returns false the response has already
// been written. Without a Redis client or a positive limit every request
// passes. Only requests that reach the model should be counted.
func (rl *RateLimiter) Allow(c *gin.Context) bool {
	if rl.redis == nil || rl.config.Limit <= 0 {
		return true
	}

	userID, ok := UserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "User not authenticated")
		return false
	}

	allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
	if err != nil {
		logger.Warn("rate limit check failed", zap.Error(err))
		c.Header("X-RateLimit-Error", "rate limit check failed")
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

	if !allowed {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":     false,
			"message":     fmt.Sprintf("You have exceeded the limit of %d requests per %v", rl.config.Limit, rl.config.Window),
			"retry_after": int(time.Until(resetTime).Seconds()),
		})
		return false
	}
	return true
}

// IsAllowed records one request for key and reports whether it fits the window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := max(rl.config.Limit-count, 0)
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
