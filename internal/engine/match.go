package engine

import (
	"strconv"
	"strings"

	"github.com/gallerykit/gallery-engine/model"
)

// matchesCriteria reports whether an item matches an action's match_type
// criteria. This is the shared selection vocabulary for filter, badge, limit
// and prioritize actions.
//
// The variant_value match falls back to the context's selected values only
// when the item carries no explicit variant mapping. The asymmetry mirrors the
// product behavior and is intentional.
func matchesCriteria(action model.Action, item model.ProcessedMediaItem, ctx *model.EvaluationContext) bool {
	switch action.MatchType {
	case model.MatchTypeMediaTag:
		return anyTagMatch(item.Tags, action.MatchValues)
	case model.MatchTypeVariantValue:
		itemValues := item.VariantValues
		if len(itemValues) == 0 {
			itemValues = ctx.Variant.SelectedValues
		}
		return matchValueSet(itemValues, action.MatchValues, action.MatchMode)
	case model.MatchTypeMediaType:
		return containsFold(action.MatchValues, item.Type)
	case model.MatchTypePosition:
		return positionMatch(item.Position, action.MatchValues)
	case model.MatchTypeAltText:
		return altTextMatch(item.Alt, action.MatchValues)
	case model.MatchTypeUniversal:
		return item.Universal
	default:
		return false
	}
}

// matchesReorderCriteria is the reorder-action subset of matchesCriteria:
// variant_value and universal are not part of the reorder vocabulary.
func matchesReorderCriteria(action model.Action, item model.ProcessedMediaItem) bool {
	switch action.MatchType {
	case model.MatchTypeMediaTag:
		return anyTagMatch(item.Tags, action.MatchValues)
	case model.MatchTypeMediaType:
		return containsFold(action.MatchValues, item.Type)
	case model.MatchTypePosition:
		return positionMatch(item.Position, action.MatchValues)
	case model.MatchTypeAltText:
		return altTextMatch(item.Alt, action.MatchValues)
	default:
		return false
	}
}

// anyTagMatch reports a case-insensitive intersection between item tags and
// wanted tags.
func anyTagMatch(tags, wanted []string) bool {
	for _, want := range wanted {
		if containsFold(tags, want) {
			return true
		}
	}
	return false
}

// matchValueSet applies any/all semantics over wanted values against the
// item's effective variant values.
func matchValueSet(itemValues, wanted []string, mode string) bool {
	if len(wanted) == 0 {
		return false
	}
	if strings.EqualFold(mode, "all") {
		for _, want := range wanted {
			if !containsFold(itemValues, want) {
				return false
			}
		}
		return true
	}
	for _, want := range wanted {
		if containsFold(itemValues, want) {
			return true
		}
	}
	return false
}

// positionMatch checks the item's original position against numeric match
// values.
func positionMatch(position int, wanted []string) bool {
	for _, want := range wanted {
		if n, err := strconv.Atoi(strings.TrimSpace(want)); err == nil && n == position {
			return true
		}
	}
	return false
}

// altTextMatch reports whether any wanted value is a case-insensitive
// substring of the item's alt text.
func altTextMatch(alt string, wanted []string) bool {
	altLower := strings.ToLower(alt)
	for _, want := range wanted {
		if want != "" && strings.Contains(altLower, strings.ToLower(want)) {
			return true
		}
	}
	return false
}
