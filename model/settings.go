package model

// Fallback behaviors when no rule matches.
const (
	FallbackDefaultGallery = "default_gallery"
	FallbackHideGallery    = "hide_gallery"
)

// DefaultMaxRulesPerEvaluation caps action-application cost for unbounded
// rule sets. This is the engine's only backpressure mechanism.
const DefaultMaxRulesPerEvaluation = 50

// GlobalSettings are the shop-level evaluation switches.
type GlobalSettings struct {
	EnableRules           bool   `json:"enable_rules"`
	FallbackBehavior      string `json:"fallback_behavior"`
	MaxRulesPerEvaluation int    `json:"max_rules_per_evaluation"`
	UseLegacyFallback     bool   `json:"use_legacy_fallback"` // fall back to Shopify's native variant-media mapping when no rule fires
}

// DefaultGlobalSettings returns the settings applied to shops that have never
// saved any.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		EnableRules:           true,
		FallbackBehavior:      FallbackDefaultGallery,
		MaxRulesPerEvaluation: DefaultMaxRulesPerEvaluation,
		UseLegacyFallback:     true,
	}
}

// Normalize fills zero values with safe defaults so partially-specified
// settings from the API behave predictably.
func (s GlobalSettings) Normalize() GlobalSettings {
	if s.MaxRulesPerEvaluation <= 0 {
		s.MaxRulesPerEvaluation = DefaultMaxRulesPerEvaluation
	}
	if s.FallbackBehavior == "" {
		s.FallbackBehavior = FallbackDefaultGallery
	}
	return s
}
