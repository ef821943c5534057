package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(cfg.Logger))
	router.Use(Recovery())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	moods := NewMoodsController(cfg.Journal)
	router.POST("/api/moods", moods.CreateMood)
	router.GET("/api/moods", moods.ListMoods)
	router.DELETE("/api/moods", moods.ClearMoods)
	router.GET("/api/moods/today", moods.GetToday)
	router.GET("/api/moods/date/:date", moods.GetByDate)
	router.GET("/api/moods/:id", moods.GetMood)
	router.PATCH("/api/moods/:id", moods.UpdateMood)
	router.DELETE("/api/moods/:id", moods.DeleteMood)

	settings := NewSettingsController(cfg.Journal)
	router.GET("/api/settings", settings.GetSettings)
	router.PATCH("/api/settings", settings.UpdateSettings)

	tags := NewTagsController(cfg.Journal, cfg.TaskQueue)
	router.GET("/api/tags", tags.GetTagUsage)
	router.GET("/api/tags/frequent", tags.GetFrequentTags)

	insightsController := NewInsightsController(cfg.Journal)
	router.GET("/api/insights", insightsController.GetInsights)

	snapshots := NewSnapshotController(cfg.Journal, cfg.MaxImportBytes)
	router.GET("/api/export", snapshots.Export)
	router.POST("/api/import", snapshots.Import)

	admin := NewAdminController(cfg.Journal, cfg.TaskQueue, cfg.RetentionDays)
	router.POST("/api/admin/purge", admin.Purge)
	router.POST("/api/admin/tags/rebuild", tags.RebuildTagUsage)
	router.GET("/api/admin/tasks/:id", admin.GetTaskStatus)

	return router
}
