package model

import (
	"time"
)

// Device types recognized by device conditions.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// VariantContext captures the visitor's current variant selection.
type VariantContext struct {
	SelectedOptions map[string]string `json:"selected_options,omitempty"` // option name -> value, e.g. "Color" -> "Red"
	SelectedValues  []string          `json:"selected_values,omitempty"`  // flat list of selected option values
}

// CustomerContext describes the (possibly anonymous) customer.
type CustomerContext struct {
	IsLoggedIn bool     `json:"is_logged_in"`
	Tags       []string `json:"tags,omitempty"`
	OrderCount int      `json:"order_count"`
	TotalSpent float64  `json:"total_spent"`
}

// TrafficContext describes how the visitor arrived at the page.
type TrafficContext struct {
	Path        string `json:"path,omitempty"`
	Referrer    string `json:"referrer,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

// InventoryContext carries product-level and per-variant stock counts.
type InventoryContext struct {
	TotalInventory   int            `json:"total_inventory"`
	VariantInventory map[string]int `json:"variant_inventory,omitempty"`
	InStock          bool           `json:"in_stock"`
}

// GeoContext is the visitor's resolved location.
type GeoContext struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
}

// SessionContext describes the visitor's browsing session.
type SessionContext struct {
	IsFirstVisit        bool     `json:"is_first_visit"`
	PageViews           int      `json:"page_views"`
	Duration            int      `json:"duration"` // seconds
	ViewedProductIDs    []string `json:"viewed_product_ids,omitempty"`
	ViewedCollectionIDs []string `json:"viewed_collection_ids,omitempty"`
}

// TimeContext pins the evaluation to a single instant so time conditions are
// consistent across a request.
type TimeContext struct {
	Now time.Time `json:"now"`
}

// EvaluationContext is the full visitor/session snapshot a rule's conditions
// are matched against. Constructed once per evaluation request and treated as
// read-only throughout.
type EvaluationContext struct {
	Device      string           `json:"device,omitempty"`
	ScreenWidth int              `json:"screen_width,omitempty"`
	Variant     VariantContext   `json:"variant,omitempty"`
	Customer    CustomerContext  `json:"customer,omitempty"`
	Traffic     TrafficContext   `json:"traffic,omitempty"`
	Inventory   InventoryContext `json:"inventory,omitempty"`
	Geo         GeoContext       `json:"geo,omitempty"`
	Session     SessionContext   `json:"session,omitempty"`
	Time        TimeContext      `json:"time,omitempty"`
	Media       []MediaItem      `json:"media,omitempty"`
}

// MatchedRule identifies a rule that fired during evaluation.
type MatchedRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RuleDebugInfo records the outcome of evaluating one rule.
type RuleDebugInfo struct {
	RuleID         string   `json:"rule_id"`
	RuleName       string   `json:"rule_name"`
	Matched        bool     `json:"matched"`
	ActionsApplied []string `json:"actions_applied,omitempty"`
}

// EvaluationResult is the engine's output for one evaluation call.
type EvaluationResult struct {
	Media              []ProcessedMediaItem `json:"media"`
	MatchedRules       []MatchedRule        `json:"matched_rules"`
	EvaluationTimeMs   float64              `json:"evaluation_time_ms"`
	UsedLegacyFallback bool                 `json:"used_legacy_fallback"`
	Debug              []RuleDebugInfo      `json:"debug,omitempty"`
}
