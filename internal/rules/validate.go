package rules

import (
	"fmt"
	"strings"

	"github.com/gallerykit/gallery-engine/internal/engine"
	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

var validStatuses = map[string]bool{
	model.RuleStatusDraft:     true,
	model.RuleStatusActive:    true,
	model.RuleStatusPaused:    true,
	model.RuleStatusScheduled: true,
}

var validActionTypes = map[string]bool{
	model.ActionTypeFilter:     true,
	model.ActionTypeReorder:    true,
	model.ActionTypeBadge:      true,
	model.ActionTypeLimit:      true,
	model.ActionTypePrioritize: true,
	model.ActionTypeReplace:    true,
}

var validMatchTypes = map[string]bool{
	model.MatchTypeMediaTag:     true,
	model.MatchTypeVariantValue: true,
	model.MatchTypeMediaType:    true,
	model.MatchTypePosition:     true,
	model.MatchTypeAltText:      true,
	model.MatchTypeUniversal:    true,
}

var validReorderStrategies = map[string]bool{
	engine.ReorderMoveToFront:    true,
	engine.ReorderMoveToBack:     true,
	engine.ReorderMoveToPosition: true,
	engine.ReorderShuffle:        true,
	engine.ReorderReverse:        true,
	engine.ReorderSortByTagOrder: true,
}

var validPrioritizeStrategies = map[string]bool{
	engine.PrioritizeBoostToFront:   true,
	engine.PrioritizeBoostPositions: true,
	engine.PrioritizeInterleave:     true,
}

var validReplaceSources = map[string]bool{
	engine.ReplaceSourceStaticURLs:       true,
	engine.ReplaceSourceMetafield:        true,
	engine.ReplaceSourceCollection:       true,
	engine.ReplaceSourceProductMetafield: true,
}

// ValidateRule checks a rule's structure before it enters the store and
// returns the first problem found. The engine itself assumes it only ever
// receives structurally valid rules; this is the boundary that guarantees it.
func ValidateRule(rule model.Rule) error {
	issues := ValidateRuleIssues(rule)
	if len(issues) == 0 {
		return nil
	}
	return &issues[0]
}

// ValidateRuleIssues collects every structural problem with a rule, for
// structured API error responses.
func ValidateRuleIssues(rule model.Rule) []apperrors.ValidationError {
	var issues []apperrors.ValidationError
	add := func(field, message string) {
		issues = append(issues, apperrors.ValidationError{Field: field, Message: message})
	}

	if strings.TrimSpace(rule.Name) == "" {
		add("name", "rule name cannot be empty")
	}
	if rule.Status != "" && !validStatuses[rule.Status] {
		add("status", fmt.Sprintf("invalid status '%s'", rule.Status))
	}

	validateGroup(rule.Conditions, "conditions", 0, add)

	if len(rule.Actions) == 0 {
		add("actions", "rule must have at least one action")
	}
	for i, action := range rule.Actions {
		validateAction(action, fmt.Sprintf("actions[%d]", i), add)
	}

	if rule.ProductScope != nil {
		if rule.ProductScope.Mode != "include" && rule.ProductScope.Mode != "exclude" {
			add("product_scope.mode", fmt.Sprintf("invalid mode '%s'", rule.ProductScope.Mode))
		}
		if len(rule.ProductScope.ProductIDs) == 0 {
			add("product_scope.product_ids", "product scope requires at least one product ID")
		}
	}

	return issues
}

const maxValidationDepth = 32

// validateGroup walks the condition tree checking group structure and leaf
// fields. Depth is bounded so corrupted input cannot recurse unboundedly.
func validateGroup(group model.ConditionGroup, path string, depth int, add func(field, message string)) {
	if depth > maxValidationDepth {
		add(path, "condition tree exceeds maximum nesting depth")
		return
	}

	if group.IsLeaf() {
		if len(group.Conditions) > 0 {
			add(path, "a group cannot have both a condition and child groups")
		}
		if strings.TrimSpace(group.Condition.Field) == "" {
			add(path+".condition.field", "condition field cannot be empty")
		} else if !engine.KnownConditionField(group.Condition.Field) {
			add(path+".condition.field", fmt.Sprintf("unknown condition field '%s'", group.Condition.Field))
		}
		return
	}

	switch strings.ToLower(group.Operator) {
	case model.GroupOperatorAnd, model.GroupOperatorOr:
		// Zero or more children; empty groups have defined semantics.
	case model.GroupOperatorNot:
		if len(group.Conditions) != 1 {
			add(path, fmt.Sprintf("NOT group must have exactly one child, got %d", len(group.Conditions)))
		}
	default:
		add(path+".operator", fmt.Sprintf("unknown group operator '%s'", group.Operator))
	}

	for i, child := range group.Conditions {
		validateGroup(child, fmt.Sprintf("%s.conditions[%d]", path, i), depth+1, add)
	}
}

// validateAction checks the per-type parameters of one action.
func validateAction(action model.Action, path string, add func(field, message string)) {
	if !validActionTypes[action.Type] {
		// Unknown action types are a runtime no-op, but new rules should not
		// be authored with them.
		add(path+".type", fmt.Sprintf("invalid action type '%s'", action.Type))
		return
	}

	if action.MatchType != "" && !validMatchTypes[action.MatchType] {
		add(path+".match_type", fmt.Sprintf("invalid match type '%s'", action.MatchType))
	}
	if action.MatchMode != "" && action.MatchMode != "any" && action.MatchMode != "all" {
		add(path+".match_mode", fmt.Sprintf("invalid match mode '%s' (expected any or all)", action.MatchMode))
	}

	switch action.Type {
	case model.ActionTypeFilter:
		if action.Mode != "" && action.Mode != "include" && action.Mode != "exclude" {
			add(path+".mode", fmt.Sprintf("invalid filter mode '%s'", action.Mode))
		}
		if action.MatchType == "" {
			add(path+".match_type", "filter actions require a match type")
		}
	case model.ActionTypeReorder:
		if !validReorderStrategies[action.Strategy] {
			add(path+".strategy", fmt.Sprintf("invalid reorder strategy '%s'", action.Strategy))
		}
		if action.Strategy == engine.ReorderMoveToPosition && action.Position < 0 {
			add(path+".position", "position cannot be negative")
		}
		if action.Strategy == engine.ReorderSortByTagOrder && len(action.TagOrder) == 0 {
			add(path+".tag_order", "sort_by_tag_order requires a tag order list")
		}
	case model.ActionTypeBadge:
		if action.Badge == nil || strings.TrimSpace(action.Badge.Text) == "" {
			add(path+".badge.text", "badge actions require badge text")
		}
		if action.Target == engine.BadgeTargetMatched && action.MatchType == "" {
			add(path+".match_type", "badge target 'matched' requires a match type")
		}
		if action.Target == engine.BadgeTargetPositions && len(action.Positions) == 0 {
			add(path+".positions", "badge target 'positions' requires a positions list")
		}
	case model.ActionTypeLimit:
		if action.MaxImages < 1 {
			add(path+".max_images", "limit actions must have max_images >= 1")
		}
		if action.Keep == engine.LimitKeepMatched && action.MatchType == "" {
			add(path+".match_type", "limit keep 'matched' requires a match type")
		}
	case model.ActionTypePrioritize:
		if !validPrioritizeStrategies[action.Strategy] {
			add(path+".strategy", fmt.Sprintf("invalid prioritize strategy '%s'", action.Strategy))
		}
		if action.Strategy == engine.PrioritizeBoostPositions && action.BoostAmount < 1 {
			add(path+".boost_amount", "boost_positions requires boost_amount >= 1")
		}
	case model.ActionTypeReplace:
		if !validReplaceSources[action.Source] {
			add(path+".source", fmt.Sprintf("invalid replace source '%s'", action.Source))
		}
		if action.Source == engine.ReplaceSourceStaticURLs && len(action.Media) == 0 {
			add(path+".media", "static_urls replace requires at least one media entry")
		}
	}
}
