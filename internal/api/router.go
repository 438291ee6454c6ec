package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/config"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/service"
)

// RouterOptions carries optional deployment-specific routes
type RouterOptions struct {
	// LocalLogin, when set, is mounted at POST /api/auth/login. Only the
	// local-first deployment provides it.
	LocalLogin gin.HandlerFunc
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, verifier identity.Verifier, cfg *config.Config, log zerolog.Logger, opts *RouterOptions) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	profileHandler := NewProfileHandler(services, log)
	eventHandler := NewEventHandler(services, log)
	hackfinderHandler := NewHackFinderHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	authRequired := authenticate(verifier, services.Account, log)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/sync", authRequired, authHandler.SyncAccount)
			if opts != nil && opts.LocalLogin != nil {
				auth.POST("/login", opts.LocalLogin)
			}
		}

		profile := api.Group("/profile")
		{
			profile.GET("/me", authRequired, profileHandler.GetMyProfile)
			profile.PUT("/me", authRequired, profileHandler.UpdateMyProfile)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListPublished)
			events.POST("", authRequired, eventHandler.Create)
		}

		hackfinder := api.Group("/hackfinder")
		{
			hackfinder.GET("", hackfinderHandler.ListPublished)
			hackfinder.POST("", authRequired,
				requireRole(models.RoleStudent, models.RoleEventHead, models.RoleAdmin),
				hackfinderHandler.Create)
		}

		admin := api.Group("/admin", authRequired, requireRole(models.RoleAdmin))
		{
			admin.GET("/queues", adminHandler.GetQueues)
			admin.POST("/events/:eventId/approve", adminHandler.ApproveEvent)
			admin.POST("/events/:eventId/reject", adminHandler.RejectEvent)
			admin.DELETE("/events/:eventId", adminHandler.DeleteEvent)
			admin.POST("/hackfinder/:postId/approve", adminHandler.ApprovePost)
			admin.POST("/hackfinder/:postId/reject", adminHandler.RejectPost)
			admin.DELETE("/hackfinder/:postId", adminHandler.DeletePost)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "campus-events-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": genericServerError,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the configured origins, falling back to
// allowing any origin when none are configured
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	corsConfig.AllowCredentials = len(origins) > 0
	return cors.New(corsConfig)
}
