package main

import (
	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/config"
	"github.com/vinishch/review-tracker/internal/handlers"
	"github.com/vinishch/review-tracker/internal/middleware"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.CORS.Origins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "review-tracker"})
	})

	// Uploaded media is served straight off disk
	r.Static("/media", cfg.Upload.Dir)

	api := r.Group("/api")
	{
		// Reviews
		reviewHandler := handlers.NewReviewHandler(models.GetDB())
		api.GET("/reviews", reviewHandler.List)
		api.GET("/reviews/search", reviewHandler.Search)
		api.POST("/reviews/search", reviewHandler.SearchPost)
		api.GET("/reviews/aggregates", reviewHandler.Aggregates)
		api.POST("/reviews/aggregates", reviewHandler.AggregatesPost)
		api.GET("/reviews/dashboard-stats", reviewHandler.DashboardStats)
		api.GET("/reviews/metrics/overdue-count", reviewHandler.OverdueCount)
		api.GET("/reviews/export", reviewHandler.Export)
		api.POST("/reviews/import", reviewHandler.Import)
		api.POST("/reviews/bulk-advance", reviewHandler.BulkAdvance)
		api.POST("/reviews/bulk-update", reviewHandler.BulkUpdate)
		api.POST("/reviews/bulk-delete", reviewHandler.BulkDelete)
		api.GET("/reviews/:id", reviewHandler.GetByID)
		api.POST("/reviews", reviewHandler.Create)
		api.PUT("/reviews/:id", reviewHandler.Update)
		api.DELETE("/reviews/:id", reviewHandler.Delete)
		api.POST("/reviews/:id/clone", reviewHandler.Clone)
		api.POST("/reviews/:id/copy", reviewHandler.Copy)
		api.POST("/reviews/:id/advance", reviewHandler.Advance)
		api.GET("/reviews/:id/history", reviewHandler.History)

		// Notifications
		notificationHandler := handlers.NewNotificationHandler(models.GetDB())
		api.GET("/notifications", notificationHandler.Evaluate)
		api.GET("/notification-rules", notificationHandler.ListRules)
		api.GET("/notification-rules/:id", notificationHandler.GetRule)
		api.POST("/notification-rules", notificationHandler.CreateRule)
		api.PUT("/notification-rules/:id", notificationHandler.UpdateRule)
		api.DELETE("/notification-rules/:id", notificationHandler.DeleteRule)

		// Lookups
		lookupHandler := handlers.NewLookupHandler(models.GetDB())
		api.GET("/lookups/platforms", lookupHandler.Platforms)
		api.POST("/lookups/platforms", lookupHandler.SavePlatform)
		api.DELETE("/lookups/platforms/:id", lookupHandler.DeletePlatform)
		api.GET("/lookups/mediators", lookupHandler.Mediators)
		api.POST("/lookups/mediators", lookupHandler.SaveMediator)
		api.DELETE("/lookups/mediators/:id", lookupHandler.DeleteMediator)
		api.GET("/lookups/statuses", lookupHandler.Statuses)
		api.POST("/lookups/statuses", lookupHandler.SaveStatus)
		api.DELETE("/lookups/statuses/:id", lookupHandler.DeleteStatus)

		// Saved views
		viewHandler := handlers.NewViewPresetHandler(models.GetDB())
		api.GET("/views", viewHandler.List)
		api.GET("/views/shared/:slug", viewHandler.GetShared)
		api.GET("/views/:id", viewHandler.GetByID)
		api.POST("/views", viewHandler.Create)
		api.PUT("/views/:id", viewHandler.Update)
		api.DELETE("/views/:id", viewHandler.Delete)

		// Media uploads
		mediaHandler := handlers.NewMediaHandler(cfg.Upload.Dir)
		api.POST("/media", mediaHandler.Upload)
		api.DELETE("/media/:filename", mediaHandler.Delete)
	}
}
