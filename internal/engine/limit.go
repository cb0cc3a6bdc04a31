package engine

import (
	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Limit keep strategies.
const (
	LimitKeepFirst   = "first"
	LimitKeepLast    = "last"
	LimitKeepEven    = "even_distribution"
	LimitKeepMatched = "matched"
)

// applyLimit caps the number of visible items at MaxImages. The keep strategy
// selects which visible items survive; everything else has its Visible flag
// cleared. Array length never changes and hidden items stay hidden.
func applyLimit(action model.Action, media []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	if action.MaxImages <= 0 {
		logging.Logger.Warn().Int("max_images", action.MaxImages).Msg("limit action without a positive max_images, skipping")
		return media
	}

	visible, _ := splitVisible(media)
	if len(visible) <= action.MaxImages {
		return media
	}

	// Ordered keep list of visible-sequence indices.
	var keep []int
	switch action.Keep {
	case LimitKeepLast:
		for i := len(visible) - action.MaxImages; i < len(visible); i++ {
			keep = append(keep, i)
		}
	case LimitKeepEven:
		for i := 0; i < action.MaxImages; i++ {
			keep = append(keep, i*len(visible)/action.MaxImages)
		}
	case LimitKeepMatched:
		for i, item := range visible {
			if len(keep) == action.MaxImages {
				break
			}
			if matchesCriteria(action, item, ctx) {
				keep = append(keep, i)
			}
		}
		// Fill remaining slots from the rest, in order.
		for i := range visible {
			if len(keep) == action.MaxImages {
				break
			}
			if !containsInt(keep, i) {
				keep = append(keep, i)
			}
		}
	default: // "first" and unspecified
		for i := 0; i < action.MaxImages; i++ {
			keep = append(keep, i)
		}
	}

	// Force the first visible item into the keep set, evicting the last kept
	// slot to stay within MaxImages.
	if action.AlwaysIncludeFirst && !containsInt(keep, 0) {
		if len(keep) == action.MaxImages {
			keep = keep[:len(keep)-1]
		}
		keep = append(keep, 0)
	}

	keepIDs := make(map[string]bool, len(keep))
	for _, idx := range keep {
		keepIDs[visible[idx].ID] = true
	}

	out := copyMedia(media)
	for i := range out {
		out[i].Visible = out[i].Visible && keepIDs[out[i].ID]
	}
	return out
}

func containsInt(list []int, value int) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
