package api

import (
	"github.com/gin-gonic/gin"

	"github.com/khabarcheck/khabarcheck/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, provider *telemetry.Provider) {
	// Health, readiness and metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(provider.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Analysis endpoints
		analyze := v1.Group("/analyze")
		{
			analyze.POST("/text", handler.AnalyzeText)   // POST /api/v1/analyze/text
			analyze.POST("/url", handler.AnalyzeURL)     // POST /api/v1/analyze/url
			analyze.POST("/batch", handler.AnalyzeBatch) // POST /api/v1/analyze/batch
		}

		// Source catalogue endpoints
		sources := v1.Group("/sources")
		{
			sources.GET("", handler.ListSources)       // GET /api/v1/sources
			sources.GET("/:domain", handler.GetSource) // GET /api/v1/sources/:domain
		}
	}
}
