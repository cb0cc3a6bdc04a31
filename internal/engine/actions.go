package engine

import (
	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// applyAction dispatches a single action to its executor. Unknown action
// types are logged and skipped so one malformed action never aborts an
// evaluation.
func applyAction(action model.Action, media []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	switch action.Type {
	case model.ActionTypeFilter:
		return applyFilter(action, media, ctx)
	case model.ActionTypeReorder:
		return applyReorder(action, media)
	case model.ActionTypeBadge:
		return applyBadge(action, media, ctx)
	case model.ActionTypeLimit:
		return applyLimit(action, media, ctx)
	case model.ActionTypePrioritize:
		return applyPrioritize(action, media, ctx)
	case model.ActionTypeReplace:
		return applyReplace(action, media)
	default:
		logging.Logger.Warn().Str("action_type", action.Type).Msg("unknown action type, passing media through unchanged")
		return media
	}
}

// copyMedia returns a shallow copy of the slice so executors never alias the
// caller's backing array.
func copyMedia(media []model.ProcessedMediaItem) []model.ProcessedMediaItem {
	out := make([]model.ProcessedMediaItem, len(media))
	copy(out, media)
	return out
}

// splitVisible partitions media into visible and hidden items, preserving the
// relative order of each partition. Reordering strategies operate on the
// visible partition only; hidden items are reappended unchanged at the end.
func splitVisible(media []model.ProcessedMediaItem) (visible, hidden []model.ProcessedMediaItem) {
	for _, item := range media {
		if item.Visible {
			visible = append(visible, item)
		} else {
			hidden = append(hidden, item)
		}
	}
	return visible, hidden
}

// joinVisible recombines a reordered visible partition with the hidden items,
// rewriting each visible item's NewPosition to its 0-based index in the
// resulting visible sequence.
func joinVisible(visible, hidden []model.ProcessedMediaItem) []model.ProcessedMediaItem {
	out := make([]model.ProcessedMediaItem, 0, len(visible)+len(hidden))
	for i, item := range visible {
		item.NewPosition = i
		out = append(out, item)
	}
	out = append(out, hidden...)
	return out
}
