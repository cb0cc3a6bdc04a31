package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

// RuleRequest represents the JSON request for creating/updating rules
type RuleRequest struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description,omitempty"`
	Status       string               `json:"status,omitempty"`
	Priority     int                  `json:"priority"`
	Conditions   model.ConditionGroup `json:"conditions"`
	Actions      []model.Action       `json:"actions" binding:"required"`
	Scope        string               `json:"scope,omitempty"`
	ScopeID      string               `json:"scope_id,omitempty"`
	ProductScope *model.ProductScope  `json:"product_scope,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
}

// RuleResponse represents the JSON response for single rule operations
type RuleResponse struct {
	Status  string     `json:"status"`
	Rule    model.Rule `json:"rule"`
	Message string     `json:"message,omitempty"`
}

// RuleListResponse represents the JSON response for listing rules
type RuleListResponse struct {
	Status   string               `json:"status"`
	Rules    []model.Rule         `json:"rules"`
	Count    int                  `json:"count"`
	Settings model.GlobalSettings `json:"settings"`
}

// RuleMessageResponse represents the JSON response for operations that only return a message
type RuleMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// toModel converts the request into a rule model.
func (req RuleRequest) toModel(ruleID string) model.Rule {
	return model.Rule{
		ID:           ruleID,
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Conditions:   req.Conditions,
		Actions:      req.Actions,
		Scope:        req.Scope,
		ScopeID:      req.ScopeID,
		ProductScope: req.ProductScope,
		Tags:         req.Tags,
	}
}

// ListRulesHandler handles GET /api/v1/shops/:shop/rules
func (api *API) ListRulesHandler(c *gin.Context) {
	shop := c.Param("shop")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	record, err := api.rules.GetShopRules(shop)
	if err != nil {
		SendInternalError(c, "listing rules", err)
		return
	}

	c.JSON(http.StatusOK, RuleListResponse{
		Status:   "success",
		Rules:    record.Rules,
		Count:    len(record.Rules),
		Settings: record.Settings,
	})
}

// CreateRuleHandler handles POST /api/v1/shops/:shop/rules
func (api *API) CreateRuleHandler(c *gin.Context) {
	shop := c.Param("shop")
	if result := ValidateShop(shop); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	rule := req.toModel("")
	if result := ValidateRulePayload(rule); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	createdRule, err := api.rules.AddRule(shop, rule)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Failed to create rule: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, RuleResponse{
		Status:  "success",
		Rule:    createdRule,
		Message: "Rule created successfully",
	})
}

// GetRuleHandler handles GET /api/v1/shops/:shop/rules/:ruleId
func (api *API) GetRuleHandler(c *gin.Context) {
	shop := c.Param("shop")
	ruleID := c.Param("ruleId")

	rule, err := api.rules.GetRule(shop, ruleID)
	if err != nil {
		SendRuleNotFoundError(c, ruleID, shop)
		return
	}

	c.JSON(http.StatusOK, RuleResponse{
		Status: "success",
		Rule:   rule,
	})
}

// UpdateRuleHandler handles PUT /api/v1/shops/:shop/rules/:ruleId
func (api *API) UpdateRuleHandler(c *gin.Context) {
	shop := c.Param("shop")
	ruleID := c.Param("ruleId")

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	rule := req.toModel(ruleID)
	if result := ValidateRulePayload(rule); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	if err := api.rules.UpdateRule(shop, rule); err != nil {
		if errors.Is(err, apperrors.ErrRuleNotFound) {
			SendRuleNotFoundError(c, ruleID, shop)
			return
		}
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Failed to update rule: "+err.Error())
		return
	}

	updatedRule, err := api.rules.GetRule(shop, ruleID)
	if err != nil {
		SendInternalError(c, "retrieving updated rule", err)
		return
	}

	c.JSON(http.StatusOK, RuleResponse{
		Status:  "success",
		Rule:    updatedRule,
		Message: "Rule updated successfully",
	})
}

// DeleteRuleHandler handles DELETE /api/v1/shops/:shop/rules/:ruleId
func (api *API) DeleteRuleHandler(c *gin.Context) {
	shop := c.Param("shop")
	ruleID := c.Param("ruleId")

	if err := api.rules.DeleteRule(shop, ruleID); err != nil {
		if errors.Is(err, apperrors.ErrRuleNotFound) {
			SendRuleNotFoundError(c, ruleID, shop)
			return
		}
		SendInternalError(c, "deleting rule", err)
		return
	}

	c.JSON(http.StatusOK, RuleMessageResponse{
		Status:  "success",
		Message: "Rule deleted successfully",
	})
}

// ToggleRuleHandler handles POST /api/v1/shops/:shop/rules/:ruleId/toggle
// Active rules become paused; every other status becomes active.
func (api *API) ToggleRuleHandler(c *gin.Context) {
	shop := c.Param("shop")
	ruleID := c.Param("ruleId")

	rule, err := api.rules.GetRule(shop, ruleID)
	if err != nil {
		SendRuleNotFoundError(c, ruleID, shop)
		return
	}

	if rule.Status == model.RuleStatusActive {
		rule.Status = model.RuleStatusPaused
	} else {
		rule.Status = model.RuleStatusActive
	}

	if err := api.rules.UpdateRule(shop, rule); err != nil {
		SendInternalError(c, "toggling rule status", err)
		return
	}

	status := "activated"
	if rule.Status != model.RuleStatusActive {
		status = "paused"
	}

	c.JSON(http.StatusOK, RuleResponse{
		Status:  "success",
		Rule:    rule,
		Message: "Rule " + status + " successfully",
	})
}

// ReorderRulesHandler handles POST /api/v1/shops/:shop/rules/reorder
func (api *API) ReorderRulesHandler(c *gin.Context) {
	shop := c.Param("shop")

	var req struct {
		RuleIDs []string `json:"rule_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := api.rules.ReorderRules(shop, req.RuleIDs); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrShopNotFound):
			SendError(c, http.StatusNotFound, ErrorCodeShopNotFound, "Shop '"+shop+"' has no stored rules")
		case errors.Is(err, apperrors.ErrRuleNotFound), errors.Is(err, apperrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Failed to reorder rules: "+err.Error())
		default:
			SendInternalError(c, "reordering rules", err)
		}
		return
	}

	c.JSON(http.StatusOK, RuleMessageResponse{
		Status:  "success",
		Message: "Rules reordered successfully",
	})
}
