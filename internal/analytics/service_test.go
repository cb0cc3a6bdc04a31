package analytics

import (
	"path/filepath"
	"testing"

	"github.com/gallerykit/gallery-engine/internal/db"
	"github.com/gallerykit/gallery-engine/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	queries, err := db.LoadQueries(database)
	if err != nil {
		t.Fatalf("failed to load queries: %v", err)
	}
	return NewService(queries)
}

func sampleResult(matched []model.MatchedRule, fallback bool) model.EvaluationResult {
	media := []model.ProcessedMediaItem{
		{MediaItem: model.MediaItem{ID: "m1"}, Visible: true},
		{MediaItem: model.MediaItem{ID: "m2"}, Visible: true},
		{MediaItem: model.MediaItem{ID: "m3"}, Visible: false},
	}
	debug := make([]model.RuleDebugInfo, len(matched))
	for i, m := range matched {
		debug[i] = model.RuleDebugInfo{RuleID: m.ID, RuleName: m.Name, Matched: true}
	}
	return model.EvaluationResult{
		Media:              media,
		MatchedRules:       matched,
		Debug:              debug,
		EvaluationTimeMs:   1.5,
		UsedLegacyFallback: fallback,
	}
}

func TestTrackEvaluationAndDashboard(t *testing.T) {
	service := newTestService(t)
	shop := "analytics-test.myshopify.com"
	ctx := &model.EvaluationContext{Device: "mobile"}

	matched := []model.MatchedRule{
		{ID: "r1", Name: "Hide videos"},
		{ID: "r2", Name: "Badge sale"},
	}
	if err := service.TrackEvaluation(shop, ctx, sampleResult(matched, false)); err != nil {
		t.Fatalf("TrackEvaluation failed: %v", err)
	}
	if err := service.TrackEvaluation(shop, ctx, sampleResult([]model.MatchedRule{{ID: "r1", Name: "Hide videos"}}, false)); err != nil {
		t.Fatalf("TrackEvaluation failed: %v", err)
	}

	desktopCtx := &model.EvaluationContext{Device: "desktop"}
	if err := service.TrackEvaluation(shop, desktopCtx, sampleResult(nil, true)); err != nil {
		t.Fatalf("TrackEvaluation failed: %v", err)
	}

	dashboard, err := service.Dashboard(shop, 7)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if dashboard.TotalEvaluations != 3 {
		t.Errorf("TotalEvaluations = %d, want 3", dashboard.TotalEvaluations)
	}
	if dashboard.MatchedEvaluations != 2 {
		t.Errorf("MatchedEvaluations = %d, want 2", dashboard.MatchedEvaluations)
	}
	if dashboard.FallbackEvaluations != 1 {
		t.Errorf("FallbackEvaluations = %d, want 1", dashboard.FallbackEvaluations)
	}
	if dashboard.AvgEvaluationTimeMs <= 0 {
		t.Errorf("AvgEvaluationTimeMs = %f, want > 0", dashboard.AvgEvaluationTimeMs)
	}
	wantRate := 100 * 2.0 / 3.0
	if dashboard.MatchRatePercent < wantRate-0.01 || dashboard.MatchRatePercent > wantRate+0.01 {
		t.Errorf("MatchRatePercent = %f, want about %f", dashboard.MatchRatePercent, wantRate)
	}

	if len(dashboard.TopRules) != 2 {
		t.Fatalf("TopRules = %+v, want 2 entries", dashboard.TopRules)
	}
	if dashboard.TopRules[0].RuleID != "r1" || dashboard.TopRules[0].MatchCount != 2 {
		t.Errorf("top rule = %+v, want r1 with 2 matches", dashboard.TopRules[0])
	}

	if len(dashboard.DeviceBreakdown) != 2 {
		t.Fatalf("DeviceBreakdown = %+v, want 2 entries", dashboard.DeviceBreakdown)
	}
	if dashboard.DeviceBreakdown[0].Device != "mobile" || dashboard.DeviceBreakdown[0].Count != 2 {
		t.Errorf("device breakdown = %+v, want mobile first with 2", dashboard.DeviceBreakdown[0])
	}
}

func TestDashboardEmptyShop(t *testing.T) {
	service := newTestService(t)

	dashboard, err := service.Dashboard("quiet-shop.myshopify.com", 7)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dashboard.TotalEvaluations != 0 {
		t.Errorf("TotalEvaluations = %d, want 0", dashboard.TotalEvaluations)
	}
	if dashboard.MatchRatePercent != 0 {
		t.Errorf("MatchRatePercent = %f, want 0", dashboard.MatchRatePercent)
	}
	if dashboard.AvgEvaluationTimeMs != 0 {
		t.Errorf("AvgEvaluationTimeMs = %f, want 0", dashboard.AvgEvaluationTimeMs)
	}
	if len(dashboard.TopRules) != 0 || len(dashboard.DeviceBreakdown) != 0 {
		t.Errorf("empty shop should have empty lists, got %+v", dashboard)
	}
}

func TestDashboardScopedByShop(t *testing.T) {
	service := newTestService(t)
	ctx := &model.EvaluationContext{Device: "mobile"}

	if err := service.TrackEvaluation("shop-a.myshopify.com", ctx, sampleResult(nil, false)); err != nil {
		t.Fatalf("TrackEvaluation failed: %v", err)
	}

	dashboard, err := service.Dashboard("shop-b.myshopify.com", 7)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dashboard.TotalEvaluations != 0 {
		t.Errorf("shop-b should see no events, got %d", dashboard.TotalEvaluations)
	}
}

func TestDashboardDefaultWindow(t *testing.T) {
	service := newTestService(t)

	dashboard, err := service.Dashboard("any.myshopify.com", 0)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dashboard.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want the default 7", dashboard.WindowDays)
	}
}
