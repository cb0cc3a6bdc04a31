package engine

import (
	"time"

	"github.com/gallerykit/gallery-engine/model"
)

// BuildContext fills a partial evaluation context with defaults so the
// preview endpoint can evaluate rules without a storefront session: desktop
// device, the current time, and a small sample gallery when no media is
// supplied.
func BuildContext(partial model.EvaluationContext) *model.EvaluationContext {
	ctx := partial
	if ctx.Device == "" {
		ctx.Device = model.DeviceDesktop
	}
	if ctx.Time.Now.IsZero() {
		ctx.Time.Now = time.Now()
	}
	if len(ctx.Media) == 0 {
		ctx.Media = SampleMedia()
	}
	return &ctx
}

// SampleMedia returns the five-item preview gallery spanning the
// image/video/tag/variant/universal combinations merchants test rules
// against.
func SampleMedia() []model.MediaItem {
	return []model.MediaItem{
		{
			ID:        "media_1",
			Type:      model.MediaTypeImage,
			Src:       "https://cdn.example.com/gallery/hero.jpg",
			Alt:       "Hero product shot",
			Position:  0,
			Tags:      []string{"hero", "front"},
			Universal: true,
		},
		{
			ID:            "media_2",
			Type:          model.MediaTypeImage,
			Src:           "https://cdn.example.com/gallery/lifestyle-red.jpg",
			Alt:           "Lifestyle photo, red colorway",
			Position:      1,
			Tags:          []string{"lifestyle"},
			VariantValues: []string{"Red"},
		},
		{
			ID:            "media_3",
			Type:          model.MediaTypeImage,
			Src:           "https://cdn.example.com/gallery/detail-blue.jpg",
			Alt:           "Stitching detail, blue colorway",
			Position:      2,
			Tags:          []string{"detail"},
			VariantValues: []string{"Blue"},
		},
		{
			ID:            "media_4",
			Type:          model.MediaTypeImage,
			Src:           "https://cdn.example.com/gallery/back.jpg",
			Alt:           "Back view",
			Position:      3,
			Tags:          []string{"back"},
			VariantValues: []string{"Red", "Blue"},
		},
		{
			ID:       "media_5",
			Type:     model.MediaTypeVideo,
			Src:      "https://cdn.example.com/gallery/demo.mp4",
			Alt:      "Product demo video",
			Position: 4,
			Tags:     []string{"video", "demo"},
		},
	}
}
