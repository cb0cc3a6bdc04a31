package engine

import (
	"fmt"

	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Replace sources. Only static_urls is implemented; the others need
// server-side data fetching that the engine deliberately does not do.
const (
	ReplaceSourceStaticURLs       = "static_urls"
	ReplaceSourceMetafield        = "metafield"
	ReplaceSourceCollection       = "collection"
	ReplaceSourceProductMetafield = "product_metafield"
)

// applyReplace swaps or extends the media list with synthesized items. This
// is the only action allowed to change the array length. Unimplemented
// sources log a warning and pass the media through unchanged; that is a known
// limitation, not an error path.
func applyReplace(action model.Action, media []model.ProcessedMediaItem) []model.ProcessedMediaItem {
	if action.Source != ReplaceSourceStaticURLs {
		logging.Logger.Warn().Str("source", action.Source).Msg("replace source not implemented, passing media through unchanged")
		return media
	}

	base := 0
	if action.AppendMode {
		base = len(media)
	}

	replacements := make([]model.ProcessedMediaItem, 0, len(action.Media))
	for i, spec := range action.Media {
		mediaType := spec.Type
		if mediaType == "" {
			mediaType = model.MediaTypeImage
		}
		replacements = append(replacements, model.ProcessedMediaItem{
			MediaItem: model.MediaItem{
				ID:       fmt.Sprintf("replacement_%d", base+i),
				Type:     mediaType,
				Src:      spec.Src,
				Alt:      spec.Alt,
				Position: base + i,
			},
			Visible:        true,
			NewPosition:    base + i,
			Badges:         []model.BadgeOverlay{},
			AppliedRuleIDs: []string{},
		})
	}

	if action.AppendMode {
		out := copyMedia(media)
		return append(out, replacements...)
	}
	return replacements
}
