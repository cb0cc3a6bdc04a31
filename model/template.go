package model

// RuleTemplate is a built-in starter rule merchants can instantiate into
// their own rule set. Applying a template copies Rule with a fresh ID and
// draft status so merchants review before activating.
type RuleTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Rule        Rule     `json:"rule"`
}
