package model

import (
	"time"
)

// EvaluationEvent records one rule-engine evaluation for analytics.
type EvaluationEvent struct {
	ID               string    `json:"id"`
	Shop             string    `json:"shop"`
	Device           string    `json:"device,omitempty"`
	RulesEvaluated   int       `json:"rules_evaluated"`
	RulesMatched     int       `json:"rules_matched"`
	MatchedRuleIDs   []string  `json:"matched_rule_ids,omitempty"`
	MediaCount       int       `json:"media_count"`
	VisibleCount     int       `json:"visible_count"`
	EvaluationTimeMs float64   `json:"evaluation_time_ms"`
	UsedFallback     bool      `json:"used_fallback"`
	Timestamp        time.Time `json:"timestamp"`
}

// RuleUsage aggregates per-rule match counts for the dashboard.
type RuleUsage struct {
	RuleID     string `json:"rule_id"`
	RuleName   string `json:"rule_name,omitempty"`
	MatchCount int    `json:"match_count"`
}

// DeviceUsage aggregates evaluations per device class.
type DeviceUsage struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// AnalyticsDashboard is the aggregated view served to the admin dashboard.
type AnalyticsDashboard struct {
	Shop                string        `json:"shop"`
	WindowDays          int           `json:"window_days"`
	TotalEvaluations    int           `json:"total_evaluations"`
	MatchedEvaluations  int           `json:"matched_evaluations"`
	MatchRatePercent    float64       `json:"match_rate_percent"`
	FallbackEvaluations int           `json:"fallback_evaluations"`
	AvgEvaluationTimeMs float64       `json:"avg_evaluation_time_ms"`
	TopRules            []RuleUsage   `json:"top_rules"`
	DeviceBreakdown     []DeviceUsage `json:"device_breakdown"`
	GeneratedAt         time.Time     `json:"generated_at"`
}
