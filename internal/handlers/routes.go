package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"table-ops-api/internal/dispatch"
	"table-ops-api/internal/middleware"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Dispatcher  *dispatch.Dispatcher
	AuthService *middleware.AuthService // nil disables the bearer guard
	RateLimit   float64
	Burst       int
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	opsHandler := NewOpsHandler(config.Dispatcher)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "table-ops-api",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	if config.RateLimit > 0 {
		v1.Use(middleware.RateLimiter(config.RateLimit, config.Burst))
	}
	if config.AuthService != nil {
		v1.Use(middleware.Authentication(config.AuthService))
	}
	{
		v1.POST("/ops", opsHandler.HandleOperation)
	}
}
