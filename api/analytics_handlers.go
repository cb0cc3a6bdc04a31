package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gallerykit/gallery-engine/model"
)

// AnalyticsResponse represents the JSON response for the analytics dashboard
type AnalyticsResponse struct {
	Status    string                   `json:"status"`
	Dashboard model.AnalyticsDashboard `json:"dashboard"`
}

// GetAnalyticsHandler handles GET /api/v1/shops/:shop/analytics
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	shop := c.Param("shop")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if api.analytics == nil {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeAnalyticsFailed,
			"Analytics storage is not configured")
		return
	}

	windowDays := 7
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
				"Query parameter 'window_days' must be a positive integer")
			return
		}
		windowDays = parsed
	}

	dashboard, err := api.analytics.Dashboard(shop, windowDays)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeAnalyticsFailed,
			"Failed to load analytics: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, AnalyticsResponse{
		Status:    "success",
		Dashboard: dashboard,
	})
}
