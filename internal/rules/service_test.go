package rules

import (
	"errors"
	"testing"

	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

func TestServiceGetRule(t *testing.T) {
	service := NewService(NewMemoryRuleStore())
	created, err := service.AddRule(testShop, validRule("Findable"))
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	got, err := service.GetRule(testShop, created.ID)
	if err != nil {
		t.Fatalf("GetRule failed: %v", err)
	}
	if got.Name != "Findable" {
		t.Errorf("got rule %+v", got)
	}

	if _, err := service.GetRule(testShop, "missing"); !errors.Is(err, apperrors.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestServiceEvaluateForShop(t *testing.T) {
	service := NewService(NewMemoryRuleStore())

	rule := validRule("Hide videos on mobile")
	rule.Status = model.RuleStatusActive
	if _, err := service.AddRule(testShop, rule); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	ctx := &model.EvaluationContext{
		Device: "mobile",
		Media: []model.MediaItem{
			{ID: "img", Type: "image", Position: 0},
			{ID: "vid", Type: "video", Position: 1},
		},
	}

	result, err := service.EvaluateForShop(testShop, ctx)
	if err != nil {
		t.Fatalf("EvaluateForShop failed: %v", err)
	}
	if len(result.MatchedRules) != 1 {
		t.Fatalf("matched %d rules, want 1", len(result.MatchedRules))
	}
	for _, item := range result.Media {
		wantVisible := item.Type != "video"
		if item.Visible != wantVisible {
			t.Errorf("item %s visible = %v, want %v", item.ID, item.Visible, wantVisible)
		}
	}
}

func TestServiceEvaluateForShopUsesStoredSettings(t *testing.T) {
	service := NewService(NewMemoryRuleStore())

	rule := validRule("Never runs")
	rule.Status = model.RuleStatusActive
	if _, err := service.AddRule(testShop, rule); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if err := service.UpdateSettings(testShop, model.GlobalSettings{EnableRules: false}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	ctx := &model.EvaluationContext{
		Device: "mobile",
		Media:  []model.MediaItem{{ID: "img", Type: "image"}},
	}
	result, err := service.EvaluateForShop(testShop, ctx)
	if err != nil {
		t.Fatalf("EvaluateForShop failed: %v", err)
	}
	if !result.UsedLegacyFallback {
		t.Error("disabled rules should report the legacy fallback")
	}
	if len(result.MatchedRules) != 0 {
		t.Errorf("no rules should run against a disabled shop, matched %d", len(result.MatchedRules))
	}
}

func TestServiceEvaluateForShopEmptyShop(t *testing.T) {
	service := NewService(NewMemoryRuleStore())

	ctx := &model.EvaluationContext{
		Device: "desktop",
		Media:  []model.MediaItem{{ID: "img", Type: "image"}},
	}
	result, err := service.EvaluateForShop("fresh-shop.myshopify.com", ctx)
	if err != nil {
		t.Fatalf("EvaluateForShop failed: %v", err)
	}
	if len(result.Media) != 1 || !result.Media[0].Visible {
		t.Errorf("an empty rule set should pass media through, got %+v", result.Media)
	}
}
