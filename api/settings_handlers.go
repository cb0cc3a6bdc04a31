package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gallerykit/gallery-engine/model"
)

// SettingsResponse represents the JSON response for settings operations
type SettingsResponse struct {
	Status   string               `json:"status"`
	Settings model.GlobalSettings `json:"settings"`
	Message  string               `json:"message,omitempty"`
}

// GetSettingsHandler handles GET /api/v1/shops/:shop/settings
func (api *API) GetSettingsHandler(c *gin.Context) {
	shop := c.Param("shop")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	record, err := api.rules.GetShopRules(shop)
	if err != nil {
		SendInternalError(c, "loading settings", err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		Status:   "success",
		Settings: record.Settings,
	})
}

// UpdateSettingsHandler handles PUT /api/v1/shops/:shop/settings
func (api *API) UpdateSettingsHandler(c *gin.Context) {
	shop := c.Param("shop")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	var settings model.GlobalSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	settings = settings.Normalize()

	if err := api.rules.UpdateSettings(shop, settings); err != nil {
		SendInternalError(c, "updating settings", err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		Status:   "success",
		Settings: settings,
		Message:  "Settings updated successfully",
	})
}
