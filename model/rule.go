package model

import (
	"time"
)

// Rule statuses. Only active rules are evaluated; scheduled rules are managed
// by the authoring layer and treated as inactive here.
const (
	RuleStatusDraft     = "draft"
	RuleStatusActive    = "active"
	RuleStatusPaused    = "paused"
	RuleStatusScheduled = "scheduled"
)

// Group operators for condition composition.
const (
	GroupOperatorAnd = "and"
	GroupOperatorOr  = "or"
	GroupOperatorNot = "not"
)

// Condition is a single predicate over the evaluation context. Field selects
// the context attribute, Operator the comparison, and Value/Values the
// expected side. Option carries a field-specific qualifier (the variant option
// name for "variant_option", the variant ID for "inventory_variant").
type Condition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator,omitempty"`
	Value    interface{} `json:"value,omitempty"`
	Values   []string    `json:"values,omitempty"`
	Option   string      `json:"option,omitempty"`
}

// ConditionGroup is a recursive condition tree. A group is either a leaf
// (Condition != nil) or a composite of child groups combined with Operator.
// A "not" group has exactly one child; empty "and" is vacuously true and
// empty "or" is vacuously false.
type ConditionGroup struct {
	Operator   string           `json:"operator,omitempty"`
	Condition  *Condition       `json:"condition,omitempty"`
	Conditions []ConditionGroup `json:"conditions,omitempty"`
}

// IsLeaf reports whether the group wraps a single condition.
func (g ConditionGroup) IsLeaf() bool {
	return g.Condition != nil
}

// Action types. The Type field discriminates which executor handles the
// action; unknown types are logged and skipped, never fatal.
const (
	ActionTypeFilter     = "filter"
	ActionTypeReorder    = "reorder"
	ActionTypeBadge      = "badge"
	ActionTypeLimit      = "limit"
	ActionTypePrioritize = "prioritize"
	ActionTypeReplace    = "replace"
)

// Match types shared by filter/reorder/badge/limit/prioritize criteria.
const (
	MatchTypeMediaTag     = "media_tag"
	MatchTypeVariantValue = "variant_value"
	MatchTypeMediaType    = "media_type"
	MatchTypePosition     = "position"
	MatchTypeAltText      = "alt_text"
	MatchTypeUniversal    = "universal"
)

// InterleaveRatio controls the prioritize "interleave" strategy: chunks of
// Prioritized matched items alternate with chunks of Regular unmatched items.
type InterleaveRatio struct {
	Prioritized int `json:"prioritized"`
	Regular     int `json:"regular"`
}

// BadgeSpec is the badge-action payload. Text may embed dynamic placeholders
// ("{inventory}", "{count}") resolved when the action is applied.
type BadgeSpec struct {
	Text            string `json:"text"`
	Position        string `json:"position,omitempty"`
	Style           string `json:"style,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
}

// ReplacementMedia describes one synthesized item for the replace action's
// static_urls source.
type ReplacementMedia struct {
	Src      string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Type     string `json:"type,omitempty"` // defaults to "image"
	Position int    `json:"position"`
}

// Action is a tagged union over the six executor variants, discriminated by
// Type. Parameters are flat with omitempty so merchant-authored JSON stays
// small; each executor reads only the fields it understands.
type Action struct {
	Type string `json:"type"`

	// Shared item-matching criteria.
	MatchType   string   `json:"match_type,omitempty"`
	MatchValues []string `json:"match_values,omitempty"`
	MatchMode   string   `json:"match_mode,omitempty"` // "any" (default) or "all"

	// Filter.
	Mode string `json:"mode,omitempty"` // "include" or "exclude"

	// Reorder / prioritize.
	Strategy    string           `json:"strategy,omitempty"`
	Position    int              `json:"position,omitempty"` // move_to_position insertion point
	TagOrder    []string         `json:"tag_order,omitempty"`
	BoostAmount int              `json:"boost_amount,omitempty"`
	Ratio       *InterleaveRatio `json:"ratio,omitempty"`

	// Badge.
	Badge     *BadgeSpec `json:"badge,omitempty"`
	Target    string     `json:"target,omitempty"` // "all", "first", "last", "positions", "matched"
	Positions []int      `json:"positions,omitempty"`

	// Limit.
	MaxImages          int    `json:"max_images,omitempty"`
	Keep               string `json:"keep,omitempty"` // "first", "last", "even_distribution", "matched"
	AlwaysIncludeFirst bool   `json:"always_include_first,omitempty"`

	// Replace.
	Source     string             `json:"source,omitempty"` // only "static_urls" is implemented
	Media      []ReplacementMedia `json:"media,omitempty"`
	AppendMode bool               `json:"append_mode,omitempty"`
}

// ProductScope optionally restricts a rule to (or away from) specific products.
type ProductScope struct {
	Mode       string   `json:"mode"` // "include" or "exclude"
	ProductIDs []string `json:"product_ids"`
}

// Rule is a merchant-authored condition→actions pair. Priority defines the
// evaluation order (lower first); ties keep the stored order. Rules are
// read-only inputs to the engine.
type Rule struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Status       string         `json:"status"`
	Priority     int            `json:"priority"`
	Conditions   ConditionGroup `json:"conditions"`
	Actions      []Action       `json:"actions"`
	Scope        string         `json:"scope,omitempty"`
	ScopeID      string         `json:"scope_id,omitempty"`
	ProductScope *ProductScope  `json:"product_scope,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsActive reports whether the rule participates in evaluation.
func (r Rule) IsActive() bool {
	return r.Status == RuleStatusActive
}
