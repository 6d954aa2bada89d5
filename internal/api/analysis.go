package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
)

const defaultAnalysisDays = 7

type AnalysisHandler struct {
	entries     service.IFoodEntryService
	analysis    service.IAnalysisService
	authService middleware.TokenValidator
	limiter     *middleware.RateLimiter
}

func NewAnalysisHandler(entries service.IFoodEntryService, analysis service.IAnalysisService, authService middleware.TokenValidator, limiter *middleware.RateLimiter) *AnalysisHandler {
	return &AnalysisHandler{
		entries:     entries,
		analysis:    analysis,
		authService: authService,
		limiter:     limiter,
	}
}

func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/foodentry/analysis/health-suggestions", middleware.AuthMiddleware(h.authService), h.HealthSuggestions)
}

// HealthSuggestions analyzes the user's entries of the last days (default 7).
func (h *AnalysisHandler) HealthSuggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", defaultAnalysisDays)
	if !ok {
		return
	}
	if days <= 0 {
		_ = c.Error(&service.ValidationError{Field: "days", Message: "days must be a positive integer"})
		return
	}

	entries, err := h.entries.Since(c.Request.Context(), userID, days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(entries) == 0 {
		_ = c.Error(service.ErrNotFound).SetMeta("No food entries found for the specified period. Please log some food entries first.")
		return
	}
	if h.limiter != nil && !h.limiter.Allow(c) {
		return
	}

	report, err := h.analysis.RequestHealthAnalysis(c.Request.Context(), models.Entries(entries), days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if report.FallenBack {
		logger.Info("served fallback analysis", zap.String("user_id", userID.String()))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report.Analysis,
		"metadata": gin.H{
			"entriesAnalyzed": report.EntriesAnalyzed,
			"daysCovered":     report.DaysCovered,
			"analysisDate":    report.GeneratedAt.UTC().Format(time.RFC3339),
		},
	})
}
