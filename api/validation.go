// Package api provides the HTTP surface of the gallery rules engine: rule
// CRUD, preview evaluation, settings, templates, and analytics.
package api

import (
	"strings"

	"github.com/gallerykit/gallery-engine/internal/rules"
	"github.com/gallerykit/gallery-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateShop validates the shop path parameter
func ValidateShop(shop string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if shop == "" {
		result.AddError("shop", "Shop is required")
		return result
	}

	if strings.TrimSpace(shop) != shop {
		result.AddError("shop", "Shop cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateRulePayload runs structural rule validation and converts the issues
// into an API validation result.
func ValidateRulePayload(rule model.Rule) *ValidationResult {
	result := &ValidationResult{Valid: true}
	for _, issue := range rules.ValidateRuleIssues(rule) {
		result.AddError(issue.Field, issue.Message)
	}
	return result
}
