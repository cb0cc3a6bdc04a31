package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/internal/rules"
	"github.com/gallerykit/gallery-engine/model"
)

// TemplateListResponse represents the JSON response for listing rule templates
type TemplateListResponse struct {
	Status    string               `json:"status"`
	Templates []model.RuleTemplate `json:"templates"`
	Count     int                  `json:"count"`
}

// ListTemplatesHandler handles GET /api/v1/templates
func (api *API) ListTemplatesHandler(c *gin.Context) {
	templates := rules.BuiltinTemplates()
	c.JSON(http.StatusOK, TemplateListResponse{
		Status:    "success",
		Templates: templates,
		Count:     len(templates),
	})
}

// ApplyTemplateHandler handles POST /api/v1/shops/:shop/templates/:templateId/apply
func (api *API) ApplyTemplateHandler(c *gin.Context) {
	shop := c.Param("shop")
	templateID := c.Param("templateId")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	rule, err := api.rules.ApplyTemplate(shop, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			SendTemplateNotFoundError(c, templateID)
			return
		}
		SendInternalError(c, "applying template", err)
		return
	}

	c.JSON(http.StatusCreated, RuleResponse{
		Status:  "success",
		Rule:    rule,
		Message: "Template applied successfully",
	})
}
