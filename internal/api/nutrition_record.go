package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/types"
)

type NutritionRecordHandler struct {
	records     service.INutritionRecordService
	authService middleware.TokenValidator
}

func NewNutritionRecordHandler(records service.INutritionRecordService, authService middleware.TokenValidator) *NutritionRecordHandler {
	return &NutritionRecordHandler{records: records, authService: authService}
}

func (h *NutritionRecordHandler) RegisterRoutes(router *gin.RouterGroup) {
	nutrition := router.Group("/nutrition")
	nutrition.Use(middleware.AuthMiddleware(h.authService))
	{
		nutrition.GET("", h.List)
		nutrition.POST("", h.Create)
		nutrition.PUT("/:id", h.Update)
		nutrition.DELETE("/:id", h.Delete)
	}
}

func (h *NutritionRecordHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	records, err := h.records.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

func (h *NutritionRecordHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.NutritionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	record, err := h.records.Create(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

func (h *NutritionRecordHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, recordNotFound)
	if !ok {
		return
	}
	var req types.NutritionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	record, err := h.records.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, err, recordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *NutritionRecordHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, recordNotFound)
	if !ok {
		return
	}

	if err := h.records.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err, recordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Nutrition record deleted", "id": id})
}
