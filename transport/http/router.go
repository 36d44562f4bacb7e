package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/somnia-network/govauth/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), CORS(), SecurityHeaders())

	// Create handlers
	handlers := NewAuthHandlers(authService)

	router.GET("/healthz", handlers.Health)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/authenticate", handlers.Authenticate)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/stats", OptionalAuth(authService), handlers.Stats)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(RequireAuth(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	return router
}
