package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/types"
)

const recordNotFound = "Record not found"

type ExerciseHandler struct {
	exercises   service.IExerciseService
	authService middleware.TokenValidator
}

func NewExerciseHandler(exercises service.IExerciseService, authService middleware.TokenValidator) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, authService: authService}
}

func (h *ExerciseHandler) RegisterRoutes(router *gin.RouterGroup) {
	exercise := router.Group("/exercise")
	exercise.Use(middleware.AuthMiddleware(h.authService))
	{
		exercise.GET("", h.List)
		exercise.POST("", h.Create)
		exercise.PUT("/:id", h.Update)
		exercise.DELETE("/:id", h.Delete)
	}
}

func (h *ExerciseHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	records, err := h.exercises.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

func (h *ExerciseHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	record, err := h.exercises.Create(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, recordNotFound)
	if !ok {
		return
	}
	var req types.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	record, err := h.exercises.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, err, recordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, recordNotFound)
	if !ok {
		return
	}

	if err := h.exercises.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err, recordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Record deleted"})
}
