package main

import (
	"github.com/gin-gonic/gin"
	"github.com/reflectboard/server/internal/middleware"
	"github.com/reflectboard/server/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "reflectboard"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Reflections
			protected.GET("/reflections", svc.reflectionHandler.List)
			protected.POST("/reflections", svc.reflectionHandler.Create)
			protected.GET("/reflections/:id", svc.reflectionHandler.Get)
			protected.PUT("/reflections/:id", svc.reflectionHandler.Update)
			protected.DELETE("/reflections/:id", svc.reflectionHandler.Delete)

			// Journal
			protected.GET("/journal", svc.journalHandler.List)
			protected.POST("/journal", svc.journalHandler.Create)
			protected.GET("/journal/:id", svc.journalHandler.Get)
			protected.PUT("/journal/:id", svc.journalHandler.Update)
			protected.DELETE("/journal/:id", svc.journalHandler.Delete)

			// Personal insights
			protected.GET("/insights", svc.insightsHandler.Personal)

			// Form drafts
			protected.PUT("/drafts", svc.draftHandler.Save)
			protected.GET("/drafts/:form_key", svc.draftHandler.Load)
			protected.DELETE("/drafts/:form_key", svc.draftHandler.Clear)

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("/analytics", svc.adminHandler.Analytics)
				admin.GET("/analytics/live", svc.adminHandler.AnalyticsLive)
				admin.GET("/export/csv", svc.adminHandler.ExportCSV)
				admin.GET("/logs", svc.adminHandler.SystemLogs)
				admin.POST("/logs/cleanup", svc.adminHandler.CleanupSystemLogs)
			}
		}
	}
}
