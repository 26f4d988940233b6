package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/roboteam/door-tracker/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Scan ingestion from door scanners (device identity is checked
		// against the scanner registry, not the auth layer)
		v1.POST("/scan", handler.Scan)

		// Attendance endpoints for signed-in identities
		v1.GET("/status", middleware.Auth(authCfg), handler.GetStatus)
		v1.POST("/status", middleware.Auth(authCfg), handler.ChangeStatus)
		v1.GET("/logs", middleware.Auth(authCfg), handler.GetLogs)
		v1.POST("/statistics", middleware.Auth(authCfg), handler.SaveStatistics)

		// Administrative endpoints (requires API key authentication only)
		v1.POST("/tags", middleware.APIKeyAuth(authCfg), handler.EnrollTag)
		v1.POST("/registration-links", middleware.APIKeyAuth(authCfg), handler.CreateRegistrationLink)
		v1.POST("/registration-links/redeem", middleware.APIKeyAuth(authCfg), handler.RedeemRegistrationLink)
	}
}
