package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nutrilens/backend/internal/testhelpers"
)

func limitedRouter(rl *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	})
	router.GET("/analysis", func(c *gin.Context) {
		if c.Query("days") == "0" {
			c.Status(http.StatusBadRequest)
			return
		}
		if !rl.Allow(c) {
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterWithoutRedisAllowsAll(t *testing.T) {
	router := limitedRouter(NewAnalysisRateLimiter(nil, 1), uuid.New())
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	router := limitedRouter(NewAnalysisRateLimiter(client, 2), uuid.New())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/analysis", nil))
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))

	other := limitedRouter(NewAnalysisRateLimiter(client, 2), uuid.New())
	w := httptest.NewRecorder()
	other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterSkipsRejectedRequests(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	router := limitedRouter(NewAnalysisRateLimiter(client, 1), uuid.New())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis?days=0", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analysis", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
