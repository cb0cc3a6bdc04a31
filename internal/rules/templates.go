package rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/gallerykit/gallery-engine/internal/engine"
	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

// BuiltinTemplates returns the starter-rule catalog merchants can instantiate
// into their own rule set. The catalog is static; applying a template copies
// its rule with a fresh ID and draft status.
func BuiltinTemplates() []model.RuleTemplate {
	return []model.RuleTemplate{
		{
			ID:          "mobile-lifestyle-first",
			Name:        "Mobile: lead with lifestyle shots",
			Description: "On mobile, move lifestyle-tagged images to the front of the gallery.",
			Category:    "device",
			Tags:        []string{"mobile", "reorder"},
			Rule: model.Rule{
				Name:     "Mobile: lead with lifestyle shots",
				Priority: 10,
				Conditions: model.ConditionGroup{
					Condition: &model.Condition{Field: engine.FieldDevice, Operator: "equals", Value: model.DeviceMobile},
				},
				Actions: []model.Action{
					{
						Type:        model.ActionTypeReorder,
						Strategy:    engine.ReorderMoveToFront,
						MatchType:   model.MatchTypeMediaTag,
						MatchValues: []string{"lifestyle"},
					},
				},
			},
		},
		{
			ID:          "mobile-hide-videos",
			Name:        "Mobile: hide videos",
			Description: "Hide video assets on mobile devices to keep the gallery fast.",
			Category:    "device",
			Tags:        []string{"mobile", "filter"},
			Rule: model.Rule{
				Name:     "Mobile: hide videos",
				Priority: 20,
				Conditions: model.ConditionGroup{
					Condition: &model.Condition{Field: engine.FieldDevice, Operator: "equals", Value: model.DeviceMobile},
				},
				Actions: []model.Action{
					{
						Type:        model.ActionTypeFilter,
						Mode:        "exclude",
						MatchType:   model.MatchTypeMediaType,
						MatchValues: []string{model.MediaTypeVideo},
					},
				},
			},
		},
		{
			ID:          "low-stock-urgency",
			Name:        "Low stock urgency badge",
			Description: "Badge every image with the live inventory count when fewer than 10 units remain.",
			Category:    "inventory",
			Tags:        []string{"inventory", "badge"},
			Rule: model.Rule{
				Name:     "Low stock urgency badge",
				Priority: 30,
				Conditions: model.ConditionGroup{
					Operator: model.GroupOperatorAnd,
					Conditions: []model.ConditionGroup{
						{Condition: &model.Condition{Field: engine.FieldInStock, Value: true}},
						{Condition: &model.Condition{Field: engine.FieldInventoryTotal, Operator: "lt", Value: 10}},
					},
				},
				Actions: []model.Action{
					{
						Type:   model.ActionTypeBadge,
						Target: engine.BadgeTargetAll,
						Badge: &model.BadgeSpec{
							Text:            "Only {inventory} left",
							Position:        "top_left",
							BackgroundColor: "#d72c0d",
							TextColor:       "#ffffff",
						},
					},
				},
			},
		},
		{
			ID:          "returning-customer-spotlight",
			Name:        "Returning customer spotlight",
			Description: "For logged-in repeat customers, interleave new-arrival shots with the rest of the gallery.",
			Category:    "customer",
			Tags:        []string{"customer", "prioritize"},
			Rule: model.Rule{
				Name:     "Returning customer spotlight",
				Priority: 40,
				Conditions: model.ConditionGroup{
					Operator: model.GroupOperatorAnd,
					Conditions: []model.ConditionGroup{
						{Condition: &model.Condition{Field: engine.FieldCustomerLoggedIn, Value: true}},
						{Condition: &model.Condition{Field: engine.FieldCustomerOrderCount, Operator: "gte", Value: 2}},
					},
				},
				Actions: []model.Action{
					{
						Type:        model.ActionTypePrioritize,
						Strategy:    engine.PrioritizeInterleave,
						MatchType:   model.MatchTypeMediaTag,
						MatchValues: []string{"new"},
						Ratio:       &model.InterleaveRatio{Prioritized: 1, Regular: 2},
					},
				},
			},
		},
		{
			ID:          "campaign-gallery-cap",
			Name:        "Campaign traffic: compact gallery",
			Description: "Visitors from paid campaigns see a focused four-image gallery, hero image always included.",
			Category:    "traffic",
			Tags:        []string{"traffic", "limit"},
			Rule: model.Rule{
				Name:     "Campaign traffic: compact gallery",
				Priority: 50,
				Conditions: model.ConditionGroup{
					Condition: &model.Condition{Field: engine.FieldTrafficMedium, Operator: "in", Values: []string{"cpc", "paid"}},
				},
				Actions: []model.Action{
					{
						Type:               model.ActionTypeLimit,
						MaxImages:          4,
						Keep:               engine.LimitKeepFirst,
						AlwaysIncludeFirst: true,
					},
				},
			},
		},
	}
}

// GetTemplate looks up a template by ID.
func GetTemplate(templateID string) (model.RuleTemplate, error) {
	for _, tmpl := range BuiltinTemplates() {
		if tmpl.ID == templateID {
			return tmpl, nil
		}
	}
	return model.RuleTemplate{}, apperrors.NewTemplateNotFoundError(templateID)
}

// ApplyTemplate instantiates a template into the shop's rule set as a draft
// rule with a fresh ID, so merchants review before activating.
func (s *Service) ApplyTemplate(shop, templateID string) (model.Rule, error) {
	tmpl, err := GetTemplate(templateID)
	if err != nil {
		return model.Rule{}, err
	}

	rule := tmpl.Rule
	rule.ID = uuid.New().String()
	rule.Status = model.RuleStatusDraft
	rule.Description = tmpl.Description
	rule.Tags = append([]string{}, tmpl.Tags...)
	rule.CreatedAt = time.Time{}
	rule.UpdatedAt = time.Time{}

	return s.store.AddShopRule(shop, rule)
}
