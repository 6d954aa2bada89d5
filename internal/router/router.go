package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/middleware"
)

// RouteRegistrar is implemented by every API handler.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// SetupRouter configures the shared middleware and mounts every handler under /api.
func SetupRouter(corsOrigins []string, handlers ...RouteRegistrar) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(corsOrigins))

	api := router.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return router
}
