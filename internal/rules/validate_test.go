package rules

import (
	"strings"
	"testing"

	"github.com/gallerykit/gallery-engine/model"
)

func TestValidateRuleIssues(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *model.Rule)
		wantField string
	}{
		{
			name:      "empty name",
			mutate:    func(r *model.Rule) { r.Name = "  " },
			wantField: "name",
		},
		{
			name:      "invalid status",
			mutate:    func(r *model.Rule) { r.Status = "archived" },
			wantField: "status",
		},
		{
			name:      "no actions",
			mutate:    func(r *model.Rule) { r.Actions = nil },
			wantField: "actions",
		},
		{
			name:      "unknown condition field",
			mutate:    func(r *model.Rule) { r.Conditions.Condition.Field = "phase_of_moon" },
			wantField: "conditions.condition.field",
		},
		{
			name:      "empty condition field",
			mutate:    func(r *model.Rule) { r.Conditions.Condition.Field = "" },
			wantField: "conditions.condition.field",
		},
		{
			name: "not group with wrong arity",
			mutate: func(r *model.Rule) {
				r.Conditions = model.ConditionGroup{Operator: "not"}
			},
			wantField: "conditions",
		},
		{
			name: "unknown group operator",
			mutate: func(r *model.Rule) {
				r.Conditions = model.ConditionGroup{Operator: "xor", Conditions: []model.ConditionGroup{
					{Condition: &model.Condition{Field: "device", Operator: "equals", Value: "mobile"}},
				}}
			},
			wantField: "conditions.operator",
		},
		{
			name: "leaf with children",
			mutate: func(r *model.Rule) {
				r.Conditions.Conditions = []model.ConditionGroup{
					{Condition: &model.Condition{Field: "device"}},
				}
			},
			wantField: "conditions",
		},
		{
			name:      "unknown action type",
			mutate:    func(r *model.Rule) { r.Actions[0].Type = "teleport" },
			wantField: "actions[0].type",
		},
		{
			name:      "invalid match type",
			mutate:    func(r *model.Rule) { r.Actions[0].MatchType = "color" },
			wantField: "actions[0].match_type",
		},
		{
			name:      "invalid match mode",
			mutate:    func(r *model.Rule) { r.Actions[0].MatchMode = "most" },
			wantField: "actions[0].match_mode",
		},
		{
			name:      "invalid filter mode",
			mutate:    func(r *model.Rule) { r.Actions[0].Mode = "remove" },
			wantField: "actions[0].mode",
		},
		{
			name: "filter without match type",
			mutate: func(r *model.Rule) {
				r.Actions[0].MatchType = ""
			},
			wantField: "actions[0].match_type",
		},
		{
			name: "reorder with bogus strategy",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeReorder, Strategy: "alphabetize"}}
			},
			wantField: "actions[0].strategy",
		},
		{
			name: "sort_by_tag_order without tags",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeReorder, Strategy: "sort_by_tag_order"}}
			},
			wantField: "actions[0].tag_order",
		},
		{
			name: "badge without text",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeBadge}}
			},
			wantField: "actions[0].badge.text",
		},
		{
			name: "badge positions target without positions",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{
					Type: model.ActionTypeBadge, Target: "positions",
					Badge: &model.BadgeSpec{Text: "SALE"},
				}}
			},
			wantField: "actions[0].positions",
		},
		{
			name: "limit without max_images",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeLimit}}
			},
			wantField: "actions[0].max_images",
		},
		{
			name: "limit keep matched without match type",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeLimit, MaxImages: 3, Keep: "matched"}}
			},
			wantField: "actions[0].match_type",
		},
		{
			name: "prioritize boost_positions without amount",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypePrioritize, Strategy: "boost_positions"}}
			},
			wantField: "actions[0].boost_amount",
		},
		{
			name: "replace with bogus source",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeReplace, Source: "dreams"}}
			},
			wantField: "actions[0].source",
		},
		{
			name: "static_urls replace without media",
			mutate: func(r *model.Rule) {
				r.Actions = []model.Action{{Type: model.ActionTypeReplace, Source: "static_urls"}}
			},
			wantField: "actions[0].media",
		},
		{
			name: "product scope with bad mode",
			mutate: func(r *model.Rule) {
				r.ProductScope = &model.ProductScope{Mode: "only", ProductIDs: []string{"p1"}}
			},
			wantField: "product_scope.mode",
		},
		{
			name: "product scope without products",
			mutate: func(r *model.Rule) {
				r.ProductScope = &model.ProductScope{Mode: "include"}
			},
			wantField: "product_scope.product_ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("Valid name")
			tt.mutate(&rule)

			issues := ValidateRuleIssues(rule)
			if len(issues) == 0 {
				t.Fatal("expected at least one validation issue")
			}
			found := false
			for _, issue := range issues {
				if issue.Field == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				var fields []string
				for _, issue := range issues {
					fields = append(fields, issue.Field)
				}
				t.Errorf("no issue for field %q, got %s", tt.wantField, strings.Join(fields, ", "))
			}
		})
	}
}

func TestValidateRuleAcceptsValidRules(t *testing.T) {
	rule := validRule("All good")
	if err := ValidateRule(rule); err != nil {
		t.Errorf("ValidateRule rejected a valid rule: %v", err)
	}

	rule.Conditions = model.ConditionGroup{
		Operator: "and",
		Conditions: []model.ConditionGroup{
			{Condition: &model.Condition{Field: "device", Operator: "equals", Value: "mobile"}},
			{Operator: "or", Conditions: []model.ConditionGroup{
				{Condition: &model.Condition{Field: "geo_country", Operator: "in", Values: []string{"DE", "AT"}}},
				{Operator: "not", Conditions: []model.ConditionGroup{
					{Condition: &model.Condition{Field: "first_visit", Value: true}},
				}},
			}},
		},
	}
	if err := ValidateRule(rule); err != nil {
		t.Errorf("ValidateRule rejected a valid nested tree: %v", err)
	}
}

func TestValidateRuleDepthCap(t *testing.T) {
	rule := validRule("Deep")
	group := model.ConditionGroup{
		Condition: &model.Condition{Field: "device", Operator: "equals", Value: "mobile"},
	}
	for i := 0; i < maxValidationDepth+2; i++ {
		group = model.ConditionGroup{Operator: "and", Conditions: []model.ConditionGroup{group}}
	}
	rule.Conditions = group

	if err := ValidateRule(rule); err == nil {
		t.Error("a tree past the depth cap should fail validation")
	}
}
