package engine

import (
	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Prioritize strategies.
const (
	PrioritizeBoostToFront   = "boost_to_front"
	PrioritizeBoostPositions = "boost_positions"
	PrioritizeInterleave     = "interleave"
)

// applyPrioritize rearranges the visible subsequence without ever changing
// visibility. Matching uses the full criteria vocabulary (unlike reorder).
func applyPrioritize(action model.Action, media []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	visible, hidden := splitVisible(media)

	switch action.Strategy {
	case PrioritizeBoostToFront:
		var matched, unmatched []model.ProcessedMediaItem
		for _, item := range visible {
			if matchesCriteria(action, item, ctx) {
				matched = append(matched, item)
			} else {
				unmatched = append(unmatched, item)
			}
		}
		visible = append(matched, unmatched...)
	case PrioritizeBoostPositions:
		visible = boostPositions(action, visible, ctx)
	case PrioritizeInterleave:
		visible = interleave(action, visible, ctx)
	default:
		logging.Logger.Warn().Str("strategy", action.Strategy).Msg("unknown prioritize strategy, keeping current order")
	}

	return joinVisible(visible, hidden)
}

// boostPositions moves each matched item up by BoostAmount slots, clamped at
// zero, processing positions left to right with splice semantics. Interacting
// boosts are therefore order-dependent; that behavior is intentional.
func boostPositions(action model.Action, visible []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	if action.BoostAmount <= 0 {
		return visible
	}

	items := copyMedia(visible)
	for i := 0; i < len(items); i++ {
		if !matchesCriteria(action, items[i], ctx) {
			continue
		}
		target := i - action.BoostAmount
		if target < 0 {
			target = 0
		}
		if target == i {
			continue
		}
		item := items[i]
		copy(items[target+1:i+1], items[target:i])
		items[target] = item
	}
	return items
}

// interleave alternates chunks of Ratio.Prioritized matched items with chunks
// of Ratio.Regular unmatched items until both lists are exhausted.
func interleave(action model.Action, visible []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	prioritizedChunk, regularChunk := 1, 1
	if action.Ratio != nil {
		if action.Ratio.Prioritized > 0 {
			prioritizedChunk = action.Ratio.Prioritized
		}
		if action.Ratio.Regular > 0 {
			regularChunk = action.Ratio.Regular
		}
	}

	var matched, unmatched []model.ProcessedMediaItem
	for _, item := range visible {
		if matchesCriteria(action, item, ctx) {
			matched = append(matched, item)
		} else {
			unmatched = append(unmatched, item)
		}
	}

	result := make([]model.ProcessedMediaItem, 0, len(visible))
	mi, ui := 0, 0
	for mi < len(matched) || ui < len(unmatched) {
		for n := 0; n < prioritizedChunk && mi < len(matched); n++ {
			result = append(result, matched[mi])
			mi++
		}
		for n := 0; n < regularChunk && ui < len(unmatched); n++ {
			result = append(result, unmatched[ui])
			ui++
		}
	}
	return result
}
