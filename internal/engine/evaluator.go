// Package engine implements the gallery rule engine: condition matching over
// a visitor context, and ordered application of media-list actions for every
// matching rule. Evaluation is synchronous and CPU-bound; the engine performs
// no I/O and never mutates its rule, context or settings inputs.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/gallerykit/gallery-engine/model"
)

// Evaluate runs the full rule pipeline: sort active rules by priority
// (ascending, stable on ties), cap them at the settings limit, lift the
// context's media into processed form, and fold the media through each
// matching rule's actions in list order. All matching rules apply; each sees
// the previous rule's output.
//
// Output is deterministic for identical input except where a shuffle reorder
// is used. A structurally invalid condition tree fails the whole call; no
// partial application is possible since actions are pure.
func Evaluate(rules []model.Rule, ctx *model.EvaluationContext, settings model.GlobalSettings) (model.EvaluationResult, error) {
	start := time.Now()
	settings = settings.Normalize()

	result := model.EvaluationResult{
		MatchedRules: []model.MatchedRule{},
	}

	if !settings.EnableRules {
		result.Media = model.NewProcessedMedia(ctx.Media)
		result.UsedLegacyFallback = true
		result.EvaluationTimeMs = elapsedMs(start)
		return result, nil
	}

	// Stable sort keeps input order for equal priorities.
	sorted := make([]model.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	var active []model.Rule
	for _, rule := range sorted {
		if !rule.IsActive() {
			continue
		}
		active = append(active, rule)
		if len(active) == settings.MaxRulesPerEvaluation {
			break
		}
	}

	processed := model.NewProcessedMedia(ctx.Media)

	for _, rule := range active {
		matched, err := evaluateGroup(rule.Conditions, ctx)
		if err != nil {
			return model.EvaluationResult{}, fmt.Errorf("evaluating rule %s: %w", rule.ID, err)
		}

		info := model.RuleDebugInfo{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Matched:  matched,
		}

		if matched {
			for _, action := range rule.Actions {
				processed = applyAction(action, processed, ctx)
				info.ActionsApplied = append(info.ActionsApplied, action.Type)
			}
			for i := range processed {
				processed[i].AppliedRuleIDs = append(processed[i].AppliedRuleIDs, rule.ID)
			}
			result.MatchedRules = append(result.MatchedRules, model.MatchedRule{ID: rule.ID, Name: rule.Name})
		}

		result.Debug = append(result.Debug, info)
	}

	result.Media = processed
	if len(result.MatchedRules) == 0 && settings.UseLegacyFallback {
		// The caller applies the storefront's native variant-media fallback;
		// the engine only reports that no rule fired.
		result.UsedLegacyFallback = true
	}
	result.EvaluationTimeMs = elapsedMs(start)

	return result, nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1e6
}
