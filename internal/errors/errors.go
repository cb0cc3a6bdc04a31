package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrRuleNotFound is returned when a rule is not found
	ErrRuleNotFound = errors.New("rule not found")

	// ErrShopNotFound is returned when a shop has no stored rule collection
	ErrShopNotFound = errors.New("shop not found")

	// ErrTemplateNotFound is returned when a rule template is not found
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRuleAlreadyExists is returned when trying to create a rule with an existing ID
	ErrRuleAlreadyExists = errors.New("rule already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidStructure is returned when a condition tree is malformed
	ErrInvalidStructure = errors.New("invalid condition structure")
)

// RuleNotFoundError represents a rule not found error with context
type RuleNotFoundError struct {
	Shop   string
	RuleID string
}

func (e *RuleNotFoundError) Error() string {
	if e.Shop != "" {
		return fmt.Sprintf("rule with ID '%s' not found for shop '%s'", e.RuleID, e.Shop)
	}
	return fmt.Sprintf("rule with ID '%s' not found", e.RuleID)
}

func (e *RuleNotFoundError) Is(target error) bool {
	return target == ErrRuleNotFound
}

// NewRuleNotFoundError creates a new RuleNotFoundError
func NewRuleNotFoundError(ruleID string, shop ...string) *RuleNotFoundError {
	err := &RuleNotFoundError{RuleID: ruleID}
	if len(shop) > 0 {
		err.Shop = shop[0]
	}
	return err
}

// ShopNotFoundError represents a shop not found error with context
type ShopNotFoundError struct {
	Shop string
}

func (e *ShopNotFoundError) Error() string {
	return fmt.Sprintf("shop '%s' has no stored rules", e.Shop)
}

func (e *ShopNotFoundError) Is(target error) bool {
	return target == ErrShopNotFound
}

// NewShopNotFoundError creates a new ShopNotFoundError
func NewShopNotFoundError(shop string) *ShopNotFoundError {
	return &ShopNotFoundError{Shop: shop}
}

// TemplateNotFoundError represents a template not found error with context
type TemplateNotFoundError struct {
	TemplateID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template with ID '%s' not found", e.TemplateID)
}

func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// NewTemplateNotFoundError creates a new TemplateNotFoundError
func NewTemplateNotFoundError(templateID string) *TemplateNotFoundError {
	return &TemplateNotFoundError{TemplateID: templateID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StructureError represents a malformed condition tree (wrong NOT arity,
// unknown group operator, excessive nesting depth)
type StructureError struct {
	Path    string
	Message string
}

func (e *StructureError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("condition structure error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("condition structure error: %s", e.Message)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrInvalidStructure
}

// NewStructureError creates a new StructureError
func NewStructureError(path, message string) *StructureError {
	return &StructureError{Path: path, Message: message}
}
