// Package analytics implements evaluation tracking and dashboard reporting
// on top of the SQLite store.
package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gallerykit/gallery-engine/internal/db"
	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

const (
	// retentionDays bounds table growth; anything older is purged whenever a
	// new event lands.
	retentionDays = 90

	topRulesLimit = 10
)

// Service implements analytics tracking and reporting
type Service struct {
	queries *db.Queries
}

// NewService creates a new analytics service over the given query set.
func NewService(queries *db.Queries) *Service {
	return &Service{queries: queries}
}

// TrackEvaluation records one engine evaluation and its matched rules.
func (s *Service) TrackEvaluation(shop string, ctx *model.EvaluationContext, result model.EvaluationResult) error {
	eventID := uuid.New().String()
	now := time.Now().UTC()

	visible := 0
	for _, item := range result.Media {
		if item.Visible {
			visible++
		}
	}

	usedFallback := 0
	if result.UsedLegacyFallback {
		usedFallback = 1
	}

	_, err := s.queries.Exec("insert-evaluation-event",
		eventID, shop, ctx.Device, len(result.Debug), len(result.MatchedRules),
		len(result.Media), visible, result.EvaluationTimeMs, usedFallback, now)
	if err != nil {
		return fmt.Errorf("failed to record evaluation event: %w", err)
	}

	for _, matched := range result.MatchedRules {
		if _, err := s.queries.Exec("insert-rule-match", eventID, shop, matched.ID, matched.Name, now); err != nil {
			return fmt.Errorf("failed to record rule match: %w", err)
		}
	}

	s.purgeOld(now)
	return nil
}

// Dashboard aggregates evaluation activity for the shop over the last
// windowDays days.
func (s *Service) Dashboard(shop string, windowDays int) (model.AnalyticsDashboard, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -windowDays)

	dashboard := model.AnalyticsDashboard{
		Shop:        shop,
		WindowDays:  windowDays,
		GeneratedAt: now,
	}

	var err error
	if dashboard.TotalEvaluations, err = s.countQuery("count-evaluations", shop, since); err != nil {
		return model.AnalyticsDashboard{}, err
	}
	if dashboard.MatchedEvaluations, err = s.countQuery("count-matched-evaluations", shop, since); err != nil {
		return model.AnalyticsDashboard{}, err
	}
	if dashboard.FallbackEvaluations, err = s.countQuery("count-fallback-evaluations", shop, since); err != nil {
		return model.AnalyticsDashboard{}, err
	}

	row, err := s.queries.QueryRow("avg-evaluation-time", shop, since)
	if err != nil {
		return model.AnalyticsDashboard{}, fmt.Errorf("failed to query average evaluation time: %w", err)
	}
	if err := row.Scan(&dashboard.AvgEvaluationTimeMs); err != nil {
		return model.AnalyticsDashboard{}, fmt.Errorf("failed to scan average evaluation time: %w", err)
	}

	if dashboard.TotalEvaluations > 0 {
		dashboard.MatchRatePercent = 100 * float64(dashboard.MatchedEvaluations) / float64(dashboard.TotalEvaluations)
	}

	if dashboard.TopRules, err = s.topRules(shop, since); err != nil {
		return model.AnalyticsDashboard{}, err
	}
	if dashboard.DeviceBreakdown, err = s.deviceBreakdown(shop, since); err != nil {
		return model.AnalyticsDashboard{}, err
	}

	return dashboard, nil
}

func (s *Service) countQuery(name, shop string, since time.Time) (int, error) {
	row, err := s.queries.QueryRow(name, shop, since)
	if err != nil {
		return 0, fmt.Errorf("failed to run %s: %w", name, err)
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	return count, nil
}

func (s *Service) topRules(shop string, since time.Time) ([]model.RuleUsage, error) {
	rows, err := s.queries.Query("top-rules", shop, since, topRulesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rules: %w", err)
	}
	defer rows.Close()

	usage := []model.RuleUsage{}
	for rows.Next() {
		var entry model.RuleUsage
		if err := rows.Scan(&entry.RuleID, &entry.RuleName, &entry.MatchCount); err != nil {
			return nil, fmt.Errorf("failed to scan top rule row: %w", err)
		}
		usage = append(usage, entry)
	}
	return usage, rows.Err()
}

func (s *Service) deviceBreakdown(shop string, since time.Time) ([]model.DeviceUsage, error) {
	rows, err := s.queries.Query("device-breakdown", shop, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query device breakdown: %w", err)
	}
	defer rows.Close()

	usage := []model.DeviceUsage{}
	for rows.Next() {
		var entry model.DeviceUsage
		if err := rows.Scan(&entry.Device, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan device row: %w", err)
		}
		usage = append(usage, entry)
	}
	return usage, rows.Err()
}

// purgeOld trims events past the retention window. Failures are logged, not
// surfaced; retention is best-effort.
func (s *Service) purgeOld(now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	if _, err := s.queries.Exec("purge-old-events", cutoff); err != nil {
		logging.Logger.Warn().Err(err).Msg("failed to purge old evaluation events")
	}
	if _, err := s.queries.Exec("purge-old-rule-matches", cutoff); err != nil {
		logging.Logger.Warn().Err(err).Msg("failed to purge old rule matches")
	}
}
