package rules

import (
	"fmt"

	"github.com/gallerykit/gallery-engine/internal/engine"
	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

// Service ties the rule store to the evaluation engine and is the unit the
// API layer talks to.
type Service struct {
	store RuleStore
}

// NewService creates a new rule service backed by the given store.
func NewService(store RuleStore) *Service {
	return &Service{store: store}
}

// GetShopRules retrieves a shop's rule collection and settings.
func (s *Service) GetShopRules(shop string) (ShopRules, error) {
	return s.store.GetShopRules(shop)
}

// AddRule creates a new rule for the shop.
func (s *Service) AddRule(shop string, rule model.Rule) (model.Rule, error) {
	return s.store.AddShopRule(shop, rule)
}

// GetRule retrieves a specific rule by ID.
func (s *Service) GetRule(shop, ruleID string) (model.Rule, error) {
	record, err := s.store.GetShopRules(shop)
	if err != nil {
		return model.Rule{}, err
	}
	idx := findRule(record.Rules, ruleID)
	if idx < 0 {
		return model.Rule{}, apperrors.NewRuleNotFoundError(ruleID, shop)
	}
	return record.Rules[idx], nil
}

// UpdateRule updates an existing rule.
func (s *Service) UpdateRule(shop string, rule model.Rule) error {
	return s.store.UpdateShopRule(shop, rule)
}

// DeleteRule deletes a rule.
func (s *Service) DeleteRule(shop, ruleID string) error {
	return s.store.DeleteShopRule(shop, ruleID)
}

// ReorderRules rewrites the rule order for a shop.
func (s *Service) ReorderRules(shop string, orderedIDs []string) error {
	return s.store.ReorderShopRules(shop, orderedIDs)
}

// UpdateSettings replaces the shop's global settings.
func (s *Service) UpdateSettings(shop string, settings model.GlobalSettings) error {
	return s.store.UpdateGlobalSettings(shop, settings)
}

// EvaluateForShop evaluates the shop's stored rules against the given
// context using the shop's stored settings.
func (s *Service) EvaluateForShop(shop string, ctx *model.EvaluationContext) (model.EvaluationResult, error) {
	record, err := s.store.GetShopRules(shop)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("failed to load rules for shop %s: %w", shop, err)
	}
	return engine.Evaluate(record.Rules, ctx, record.Settings)
}
