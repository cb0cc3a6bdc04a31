package engine

import (
	"testing"

	testutil "github.com/gallerykit/gallery-engine/internal/testing"
	"github.com/gallerykit/gallery-engine/model"
)

// End-to-end rule pipelines over larger galleries, built from the shared
// fixtures.

func TestScenarioMobileGalleryCleanup(t *testing.T) {
	gallery := []model.MediaItem{
		testutil.Media(1, model.MediaTypeImage, "hero"),
		testutil.Media(2, model.MediaTypeVideo, "demo"),
		testutil.Media(3, model.MediaTypeImage, "lifestyle"),
		testutil.Media(4, model.MediaTypeImage, "lifestyle"),
		testutil.Media(5, model.MediaTypeImage, "detail"),
		testutil.Media(6, model.MediaTypeImage),
	}
	ctx := testutil.MobileContext(gallery)

	rule := model.Rule{
		ID:         "mobile-cleanup",
		Name:       "Mobile cleanup",
		Status:     model.RuleStatusActive,
		Priority:   10,
		Conditions: testutil.Leaf(FieldDevice, "equals", model.DeviceMobile),
		Actions: []model.Action{
			{
				Type: model.ActionTypeFilter, Mode: "exclude",
				MatchType: model.MatchTypeMediaType, MatchValues: []string{model.MediaTypeVideo},
			},
			{
				Type: model.ActionTypeReorder, Strategy: ReorderMoveToFront,
				MatchType: model.MatchTypeMediaTag, MatchValues: []string{"lifestyle"},
			},
			{
				Type: model.ActionTypeLimit, MaxImages: 4,
			},
		},
	}

	result, err := Evaluate([]model.Rule{rule}, ctx, model.DefaultGlobalSettings())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	testutil.AssertGalleryIntact(t, gallery, result.Media)
	testutil.AssertVisibleOrder(t, result.Media, []string{"media_3", "media_4", "media_1", "media_5"})
}

func TestScenarioCompositeConditions(t *testing.T) {
	gallery := testutil.Gallery(4)
	ctx := testutil.DesktopContext(gallery)
	ctx.Geo.Country = "DE"
	ctx.Session.IsFirstVisit = true

	// Desktop AND (German OR Austrian) AND NOT returning visitor.
	conditions := testutil.AllOf(
		testutil.Leaf(FieldDevice, "equals", model.DeviceDesktop),
		testutil.AnyOf(
			testutil.Leaf(FieldGeoCountry, "equals", "DE"),
			testutil.Leaf(FieldGeoCountry, "equals", "AT"),
		),
		testutil.Not(testutil.Leaf(FieldFirstVisit, "", false)),
	)

	rule := testutil.ActiveRule("geo-badge", 1, model.Action{
		Type:  model.ActionTypeBadge,
		Badge: &model.BadgeSpec{Text: "Kostenloser Versand"},
	})
	rule.Conditions = conditions

	result, err := Evaluate([]model.Rule{rule}, ctx, model.DefaultGlobalSettings())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(result.MatchedRules) != 1 {
		t.Fatalf("matched %d rules, want 1", len(result.MatchedRules))
	}
	for _, item := range result.Media {
		if len(item.Badges) != 1 {
			t.Errorf("item %s badges = %d, want 1", item.ID, len(item.Badges))
		}
	}

	// The same visitor from France does not match.
	ctx.Geo.Country = "FR"
	result, err = Evaluate([]model.Rule{rule}, ctx, model.DefaultGlobalSettings())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(result.MatchedRules) != 0 {
		t.Errorf("matched %d rules for a non-matching country, want 0", len(result.MatchedRules))
	}
}

func TestScenarioChainedRulesSeeEachOthersOutput(t *testing.T) {
	gallery := []model.MediaItem{
		testutil.Media(1, model.MediaTypeImage, "secondary"),
		testutil.Media(2, model.MediaTypeImage, "featured"),
		testutil.Media(3, model.MediaTypeImage),
	}
	ctx := testutil.MobileContext(gallery)

	// Rule 1 moves the featured image to the front; rule 2 badges whatever
	// is first after that.
	reorder := testutil.ActiveRule("reorder", 1, model.Action{
		Type: model.ActionTypeReorder, Strategy: ReorderMoveToFront,
		MatchType: model.MatchTypeMediaTag, MatchValues: []string{"featured"},
	})
	badge := testutil.ActiveRule("badge", 2, model.Action{
		Type: model.ActionTypeBadge, Target: BadgeTargetFirst,
		Badge: &model.BadgeSpec{Text: "Featured"},
	})

	result, err := Evaluate([]model.Rule{badge, reorder}, ctx, model.DefaultGlobalSettings())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	testutil.AssertVisibleOrder(t, result.Media, []string{"media_2", "media_1", "media_3"})
	first := result.Media[0]
	if first.ID != "media_2" || len(first.Badges) != 1 {
		t.Errorf("the reordered front item should carry the badge, got %+v", first)
	}
	for _, item := range result.Media {
		if len(item.AppliedRuleIDs) != 2 {
			t.Errorf("item %s applied rules = %v, want both", item.ID, item.AppliedRuleIDs)
		}
	}
}
