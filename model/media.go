package model

// MediaType identifies the kind of gallery asset.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaItem represents one gallery asset as supplied to the engine.
// Position is assigned once at ingestion and never mutated; reordering is
// expressed through ProcessedMediaItem.NewPosition instead.
type MediaItem struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"` // "image" or "video"
	Src           string   `json:"src"`
	Alt           string   `json:"alt,omitempty"`
	Position      int      `json:"position"`
	Tags          []string `json:"tags,omitempty"`
	VariantValues []string `json:"variant_values,omitempty"` // variant option values this asset is mapped to
	Universal     bool     `json:"universal,omitempty"`      // shown regardless of variant selection
}

// BadgeOverlay is a text overlay rendered on top of a media item.
// Immutable once created; badge actions only ever append overlays.
type BadgeOverlay struct {
	Text            string `json:"text"`
	Position        string `json:"position,omitempty"` // "top_left", "top_right", "bottom_left", "bottom_right", "top", "bottom"
	Style           string `json:"style,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
}

// ProcessedMediaItem is a MediaItem plus the state the engine maintains while
// folding it through a rule's action list. "Removing" an item always means
// Visible=false, never dropping it from the slice, so downstream consumers see
// the full gallery.
type ProcessedMediaItem struct {
	MediaItem
	Visible        bool           `json:"visible"`
	NewPosition    int            `json:"new_position"`
	Badges         []BadgeOverlay `json:"badges"`
	AppliedRuleIDs []string       `json:"applied_rule_ids"`
}

// NewProcessedMedia lifts raw media items into their processed form: visible,
// at their original position, with no badges applied.
func NewProcessedMedia(media []MediaItem) []ProcessedMediaItem {
	processed := make([]ProcessedMediaItem, len(media))
	for i, item := range media {
		processed[i] = ProcessedMediaItem{
			MediaItem:      item,
			Visible:        true,
			NewPosition:    item.Position,
			Badges:         []BadgeOverlay{},
			AppliedRuleIDs: []string{},
		}
	}
	return processed
}
