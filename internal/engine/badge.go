package engine

import (
	"strconv"
	"strings"

	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Badge targets.
const (
	BadgeTargetAll       = "all"
	BadgeTargetFirst     = "first"
	BadgeTargetLast      = "last"
	BadgeTargetPositions = "positions"
	BadgeTargetMatched   = "matched"
)

// applyBadge appends one BadgeOverlay to every visible item selected by the
// action's target. "first" and "last" refer to the current visible-ordered
// sequence, so a reorder earlier in the same action list shifts which item
// gets badged. Badges are additive and never replace existing overlays.
func applyBadge(action model.Action, media []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	if action.Badge == nil || action.Badge.Text == "" {
		logging.Logger.Warn().Msg("badge action without badge payload, skipping")
		return media
	}

	out := copyMedia(media)

	// Indices into out of the visible items, in current render order.
	var visibleIdx []int
	for i := range out {
		if out[i].Visible {
			visibleIdx = append(visibleIdx, i)
		}
	}
	if len(visibleIdx) == 0 {
		return out
	}

	var selected []int
	switch action.Target {
	case BadgeTargetFirst:
		selected = visibleIdx[:1]
	case BadgeTargetLast:
		selected = visibleIdx[len(visibleIdx)-1:]
	case BadgeTargetPositions:
		for _, pos := range action.Positions {
			if pos >= 0 && pos < len(visibleIdx) {
				selected = append(selected, visibleIdx[pos])
			}
		}
	case BadgeTargetMatched:
		for _, idx := range visibleIdx {
			if matchesCriteria(action, out[idx], ctx) {
				selected = append(selected, idx)
			}
		}
	default: // "all" and unspecified
		selected = visibleIdx
	}

	overlay := model.BadgeOverlay{
		Text:            resolveBadgeText(action.Badge.Text, ctx, len(visibleIdx)),
		Position:        action.Badge.Position,
		Style:           action.Badge.Style,
		BackgroundColor: action.Badge.BackgroundColor,
		TextColor:       action.Badge.TextColor,
	}

	for _, idx := range selected {
		badges := make([]model.BadgeOverlay, len(out[idx].Badges), len(out[idx].Badges)+1)
		copy(badges, out[idx].Badges)
		out[idx].Badges = append(badges, overlay)
	}

	return out
}

// resolveBadgeText substitutes dynamic placeholders at badge-apply time.
// Unknown placeholders are left verbatim.
func resolveBadgeText(text string, ctx *model.EvaluationContext, visibleCount int) string {
	text = strings.ReplaceAll(text, "{inventory}", strconv.Itoa(ctx.Inventory.TotalInventory))
	text = strings.ReplaceAll(text, "{count}", strconv.Itoa(visibleCount))
	return text
}
