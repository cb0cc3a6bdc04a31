package engine

import (
	"github.com/gallerykit/gallery-engine/model"
)

// applyFilter recomputes item visibility from the action's criteria.
//
// Include mode sets visible = matches outright. Exclude mode only ever
// narrows: visible = visible && !matches, so an already-hidden item is never
// re-revealed by an exclusion.
func applyFilter(action model.Action, media []model.ProcessedMediaItem, ctx *model.EvaluationContext) []model.ProcessedMediaItem {
	out := copyMedia(media)
	for i := range out {
		matches := matchesCriteria(action, out[i], ctx)
		if action.Mode == "exclude" {
			out[i].Visible = out[i].Visible && !matches
		} else {
			out[i].Visible = matches
		}
	}
	return out
}
