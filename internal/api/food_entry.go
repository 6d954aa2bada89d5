package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/nutrition"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/types"
)

const entryNotFound = "Food entry not found"

type FoodEntryHandler struct {
	entries     service.IFoodEntryService
	authService middleware.TokenValidator
}

func NewFoodEntryHandler(entries service.IFoodEntryService, authService middleware.TokenValidator) *FoodEntryHandler {
	return &FoodEntryHandler{entries: entries, authService: authService}
}

func (h *FoodEntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	food := router.Group("/foodentry")
	food.Use(middleware.AuthMiddleware(h.authService))
	{
		food.POST("", h.Create)
		food.GET("", h.List)
		food.GET("/recent", h.Recent)
		food.GET("/similar", h.Similar)
		food.GET("/stats/daily", h.DailyStats)
		food.GET("/stats/monthly", h.MonthlyStats)
		food.GET("/:id", h.Get)
		food.PUT("/:id", h.Update)
		food.DELETE("/:id", h.Delete)
	}
}

// Create accepts a single entry object or an array of them.
func (h *FoodEntryHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		invalidBody(c)
		return
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		_ = c.Error(&service.ValidationError{Message: "Request body cannot be empty"})
		return
	}

	var inputs []types.FoodEntryInput
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &inputs)
	} else {
		var single types.FoodEntryInput
		err = json.Unmarshal(raw, &single)
		inputs = []types.FoodEntryInput{single}
	}
	if err != nil {
		invalidBody(c)
		return
	}

	saved, err := h.entries.Create(c.Request.Context(), userID, inputs)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Food entries created successfully",
		"data":    saved,
		"count":   len(saved),
	})
}

func (h *FoodEntryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var f service.ListFilter
	if f.Page, ok = queryInt(c, "page", 1); !ok {
		return
	}
	if f.Limit, ok = queryInt(c, "limit", 10); !ok {
		return
	}
	if f.Days, ok = queryInt(c, "days", 0); !ok {
		return
	}
	if f.Start, ok = h.queryTime(c, "startDate"); !ok {
		return
	}
	if f.End, ok = h.queryTime(c, "endDate"); !ok {
		return
	}
	f.Ingredient = c.Query("ingredient")

	entries, page, err := h.entries.List(c.Request.Context(), userID, f)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       entries,
		"pagination": page,
	})
}

// queryTime accepts an RFC 3339 timestamp or a YYYY-MM-DD date in the server
// timezone.
func (h *FoodEntryHandler) queryTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := nutrition.ParseDate(raw, h.entries.Location())
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: key, Message: key + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp"})
		return nil, false
	}
	return &t, true
}

func (h *FoodEntryHandler) Recent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}

	entries, err := h.entries.Since(c.Request.Context(), userID, days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries, "count": len(entries)})
}

func (h *FoodEntryHandler) Similar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		return
	}

	entries, err := h.entries.Similar(c.Request.Context(), userID, c.Query("ingredient"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

func (h *FoodEntryHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, entryNotFound)
	if !ok {
		return
	}

	entry, err := h.entries.Get(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// Update applies a partial patch; fields absent from the body are kept.
func (h *FoodEntryHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, entryNotFound)
	if !ok {
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidBody(c)
		return
	}

	entry, err := h.entries.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		fail(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Food entry updated successfully",
		"data":    entry,
	})
}

func (h *FoodEntryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, entryNotFound)
	if !ok {
		return
	}

	entry, err := h.entries.Delete(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Food entry deleted successfully",
		"data":    entry,
	})
}

func (h *FoodEntryHandler) DailyStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		_ = c.Error(&service.ValidationError{Field: "date", Message: "Date parameter is required"})
		return
	}
	day, err := nutrition.ParseDate(date, h.entries.Location())
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: "date", Message: "Date must be formatted as YYYY-MM-DD"})
		return
	}

	report, err := h.entries.DailyStats(c.Request.Context(), userID, day)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    report.Date,
		"totals":  report.Totals,
		"entries": report.Entries,
		"summary": report.Summary,
	})
}

type monthlyStatsResponse struct {
	Success bool `json:"success"`
	nutrition.MonthlyStats
}

// MonthlyStats defaults to the current year and month in the server timezone.
func (h *FoodEntryHandler) MonthlyStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now().In(h.entries.Location())
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return
	}

	stats, err := h.entries.MonthlyStats(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, monthlyStatsResponse{Success: true, MonthlyStats: stats})
}
