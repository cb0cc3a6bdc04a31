package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gallerykit/gallery-engine/internal/analytics"
	"github.com/gallerykit/gallery-engine/internal/rules"
)

// API holds dependencies for API handlers: the rule service and the
// analytics service.
type API struct {
	rules     *rules.Service
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(ruleService *rules.Service, analyticsService *analytics.Service) *API {
	return &API{
		rules:     ruleService,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes for the rules engine.
func SetupRoutes(router *gin.Engine, ruleService *rules.Service, analyticsService *analytics.Service) {
	apiHandler := NewAPI(ruleService, analyticsService)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Preview/evaluation endpoint
		v1.POST("/evaluate", apiHandler.EvaluateHandler)

		// Rule template catalog
		v1.GET("/templates", apiHandler.ListTemplatesHandler)

		shopRoutes := v1.Group("/shops/:shop")
		{
			ruleRoutes := shopRoutes.Group("/rules")
			{
				ruleRoutes.GET("", apiHandler.ListRulesHandler)                  // List the shop's rules
				ruleRoutes.POST("", apiHandler.CreateRuleHandler)                // Create a rule
				ruleRoutes.POST("/reorder", apiHandler.ReorderRulesHandler)      // Rewrite rule order
				ruleRoutes.GET("/:ruleId", apiHandler.GetRuleHandler)            // Get a specific rule
				ruleRoutes.PUT("/:ruleId", apiHandler.UpdateRuleHandler)         // Update a rule
				ruleRoutes.DELETE("/:ruleId", apiHandler.DeleteRuleHandler)      // Delete a rule
				ruleRoutes.POST("/:ruleId/toggle", apiHandler.ToggleRuleHandler) // Toggle active/paused
			}

			shopRoutes.GET("/settings", apiHandler.GetSettingsHandler)
			shopRoutes.PUT("/settings", apiHandler.UpdateSettingsHandler)

			shopRoutes.POST("/templates/:templateId/apply", apiHandler.ApplyTemplateHandler)

			shopRoutes.GET("/analytics", apiHandler.GetAnalyticsHandler)
		}
	}
}

// HealthCheckHandler handles GET /health
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "gallery-engine",
	})
}
