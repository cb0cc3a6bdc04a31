package engine

import (
	"math/rand"
	"sort"

	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Reorder strategies.
const (
	ReorderMoveToFront    = "move_to_front"
	ReorderMoveToBack     = "move_to_back"
	ReorderMoveToPosition = "move_to_position"
	ReorderShuffle        = "shuffle"
	ReorderReverse        = "reverse"
	ReorderSortByTagOrder = "sort_by_tag_order"
)

// applyReorder rearranges the visible items per the action's strategy. Hidden
// items are excluded from reordering and reappended unchanged at the end, so
// render order is always [reordered visible..., hidden...].
func applyReorder(action model.Action, media []model.ProcessedMediaItem) []model.ProcessedMediaItem {
	visible, hidden := splitVisible(media)

	switch action.Strategy {
	case ReorderMoveToFront:
		matched, unmatched := partitionReorder(action, visible)
		visible = append(matched, unmatched...)
	case ReorderMoveToBack:
		matched, unmatched := partitionReorder(action, visible)
		visible = append(unmatched, matched...)
	case ReorderMoveToPosition:
		matched, unmatched := partitionReorder(action, visible)
		insertAt := action.Position
		if insertAt > len(unmatched) {
			insertAt = len(unmatched)
		}
		if insertAt < 0 {
			insertAt = 0
		}
		result := make([]model.ProcessedMediaItem, 0, len(visible))
		result = append(result, unmatched[:insertAt]...)
		result = append(result, matched...)
		result = append(result, unmatched[insertAt:]...)
		visible = result
	case ReorderShuffle:
		// Unseeded Fisher-Yates: deliberately non-deterministic.
		visible = copyMedia(visible)
		for i := len(visible) - 1; i > 0; i-- {
			j := rand.Intn(i + 1)
			visible[i], visible[j] = visible[j], visible[i]
		}
	case ReorderReverse:
		reversed := make([]model.ProcessedMediaItem, len(visible))
		for i, item := range visible {
			reversed[len(visible)-1-i] = item
		}
		visible = reversed
	case ReorderSortByTagOrder:
		visible = sortByTagOrder(visible, action.TagOrder)
	default:
		logging.Logger.Warn().Str("strategy", action.Strategy).Msg("unknown reorder strategy, keeping current order")
	}

	return joinVisible(visible, hidden)
}

// partitionReorder splits visible items into matched and unmatched partitions,
// each preserving its relative order.
func partitionReorder(action model.Action, visible []model.ProcessedMediaItem) (matched, unmatched []model.ProcessedMediaItem) {
	for _, item := range visible {
		if matchesReorderCriteria(action, item) {
			matched = append(matched, item)
		} else {
			unmatched = append(unmatched, item)
		}
	}
	return matched, unmatched
}

// sortByTagOrder sorts items by the index of their first tag found in
// tagOrder. Items matching no listed tag sort last, stably among themselves.
func sortByTagOrder(visible []model.ProcessedMediaItem, tagOrder []string) []model.ProcessedMediaItem {
	sorted := copyMedia(visible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tagOrderIndex(sorted[i], tagOrder) < tagOrderIndex(sorted[j], tagOrder)
	})
	return sorted
}

// tagOrderIndex finds the smallest tagOrder index among the item's tags;
// items with no listed tag rank after every listed one.
func tagOrderIndex(item model.ProcessedMediaItem, tagOrder []string) int {
	for idx, tag := range tagOrder {
		if containsFold(item.Tags, tag) {
			return idx
		}
	}
	return len(tagOrder)
}
