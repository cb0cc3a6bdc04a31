package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// Condition field names. Each field maps to one attribute of the evaluation
// context; the matcher fails closed on anything it does not recognize.
const (
	FieldDevice      = "device"
	FieldScreenWidth = "screen_width"

	FieldVariantOption = "variant_option"
	FieldVariantValue  = "variant_value"

	FieldCustomerLoggedIn   = "customer_logged_in"
	FieldCustomerTag        = "customer_tag"
	FieldCustomerOrderCount = "customer_order_count"
	FieldCustomerTotalSpent = "customer_total_spent"

	FieldTrafficSource   = "traffic_source"
	FieldTrafficMedium   = "traffic_medium"
	FieldTrafficCampaign = "traffic_campaign"
	FieldTrafficPath     = "traffic_path"
	FieldReferrerDomain  = "referrer_domain"

	FieldDateRange = "date_range"
	FieldDayOfWeek = "day_of_week"
	FieldTimeOfDay = "time_of_day"

	FieldInventoryTotal   = "inventory_total"
	FieldInventoryVariant = "inventory_variant"
	FieldInStock          = "in_stock"

	FieldGeoCountry = "geo_country"
	FieldGeoRegion  = "geo_region"

	FieldFirstVisit       = "first_visit"
	FieldPageViews        = "page_views"
	FieldSessionDuration  = "session_duration"
	FieldViewedProduct    = "viewed_product"
	FieldViewedCollection = "viewed_collection"
)

// knownConditionFields is the closed set of fields the matcher understands.
var knownConditionFields = map[string]bool{
	FieldDevice:             true,
	FieldScreenWidth:        true,
	FieldVariantOption:      true,
	FieldVariantValue:       true,
	FieldCustomerLoggedIn:   true,
	FieldCustomerTag:        true,
	FieldCustomerOrderCount: true,
	FieldCustomerTotalSpent: true,
	FieldTrafficSource:      true,
	FieldTrafficMedium:      true,
	FieldTrafficCampaign:    true,
	FieldTrafficPath:        true,
	FieldReferrerDomain:     true,
	FieldDateRange:          true,
	FieldDayOfWeek:          true,
	FieldTimeOfDay:          true,
	FieldInventoryTotal:     true,
	FieldInventoryVariant:   true,
	FieldInStock:            true,
	FieldGeoCountry:         true,
	FieldGeoRegion:          true,
	FieldFirstVisit:         true,
	FieldPageViews:          true,
	FieldSessionDuration:    true,
	FieldViewedProduct:      true,
	FieldViewedCollection:   true,
}

// KnownConditionField reports whether the matcher understands the given field.
// Used by rule validation at the storage boundary.
func KnownConditionField(field string) bool {
	return knownConditionFields[strings.ToLower(field)]
}

// matchCondition evaluates a single condition against the context. Unknown or
// malformed conditions evaluate to false (fail closed) and are debug-logged;
// the matcher never errors and has no side effects.
func matchCondition(cond model.Condition, ctx *model.EvaluationContext) bool {
	switch strings.ToLower(cond.Field) {
	case FieldDevice:
		return matchStringValue(ctx.Device, cond)
	case FieldScreenWidth:
		return matchNumeric(float64(ctx.ScreenWidth), cond.Operator, cond.Value)
	case FieldVariantOption:
		selected, ok := lookupOption(ctx.Variant.SelectedOptions, cond.Option)
		if !ok {
			return false
		}
		return matchStringValue(selected, cond)
	case FieldVariantValue:
		return matchMembership(ctx.Variant.SelectedValues, cond)
	case FieldCustomerLoggedIn:
		return matchBool(ctx.Customer.IsLoggedIn, cond.Value)
	case FieldCustomerTag:
		return matchIntersection(ctx.Customer.Tags, cond)
	case FieldCustomerOrderCount:
		return matchNumeric(float64(ctx.Customer.OrderCount), cond.Operator, cond.Value)
	case FieldCustomerTotalSpent:
		return matchNumeric(ctx.Customer.TotalSpent, cond.Operator, cond.Value)
	case FieldTrafficSource:
		return matchStringValue(ctx.Traffic.UTMSource, cond)
	case FieldTrafficMedium:
		return matchStringValue(ctx.Traffic.UTMMedium, cond)
	case FieldTrafficCampaign:
		return matchStringValue(ctx.Traffic.UTMCampaign, cond)
	case FieldTrafficPath:
		return matchStringValue(ctx.Traffic.Path, cond)
	case FieldReferrerDomain:
		return matchStringValue(referrerDomain(ctx.Traffic.Referrer), cond)
	case FieldDateRange:
		return matchDateRange(ctx.Time.Now, cond.Value)
	case FieldDayOfWeek:
		return containsFold(expectedStrings(cond), ctx.Time.Now.Weekday().String())
	case FieldTimeOfDay:
		return matchTimeOfDay(ctx.Time.Now, cond.Value)
	case FieldInventoryTotal:
		return matchNumeric(float64(ctx.Inventory.TotalInventory), cond.Operator, cond.Value)
	case FieldInventoryVariant:
		count, ok := ctx.Inventory.VariantInventory[cond.Option]
		if !ok {
			return false
		}
		return matchNumeric(float64(count), cond.Operator, cond.Value)
	case FieldInStock:
		return matchBool(ctx.Inventory.InStock, cond.Value)
	case FieldGeoCountry:
		return matchStringValue(ctx.Geo.Country, cond)
	case FieldGeoRegion:
		return matchStringValue(ctx.Geo.Region, cond)
	case FieldFirstVisit:
		return matchBool(ctx.Session.IsFirstVisit, cond.Value)
	case FieldPageViews:
		return matchNumeric(float64(ctx.Session.PageViews), cond.Operator, cond.Value)
	case FieldSessionDuration:
		return matchNumeric(float64(ctx.Session.Duration), cond.Operator, cond.Value)
	case FieldViewedProduct:
		return matchMembership(ctx.Session.ViewedProductIDs, cond)
	case FieldViewedCollection:
		return matchMembership(ctx.Session.ViewedCollectionIDs, cond)
	default:
		logging.Logger.Debug().Str("field", cond.Field).Msg("unknown condition field, failing closed")
		return false
	}
}

// expectedStrings collects the expected values of a condition from Values or,
// when empty, from a string Value.
func expectedStrings(cond model.Condition) []string {
	if len(cond.Values) > 0 {
		return cond.Values
	}
	if s, ok := cond.Value.(string); ok {
		return []string{s}
	}
	return nil
}

// matchStringValue applies string operators (case-insensitive) to a single
// actual value.
func matchStringValue(actual string, cond model.Condition) bool {
	expected := expectedStrings(cond)
	if len(expected) == 0 {
		return false
	}

	actualLower := strings.ToLower(actual)
	switch strings.ToLower(cond.Operator) {
	case "", "equals":
		return actualLower == strings.ToLower(expected[0])
	case "contains":
		return strings.Contains(actualLower, strings.ToLower(expected[0]))
	case "starts_with":
		return strings.HasPrefix(actualLower, strings.ToLower(expected[0]))
	case "ends_with":
		return strings.HasSuffix(actualLower, strings.ToLower(expected[0]))
	case "in":
		return containsFold(expected, actual)
	case "not_in":
		return !containsFold(expected, actual)
	default:
		return false
	}
}

// matchMembership checks expected values against a list-valued context
// attribute (selected variant values, viewed product/collection IDs).
// "in" matches when any expected value is present; "not_in" when none are.
func matchMembership(actual []string, cond model.Condition) bool {
	expected := expectedStrings(cond)
	if len(expected) == 0 {
		return false
	}

	anyPresent := false
	for _, want := range expected {
		if containsFold(actual, want) {
			anyPresent = true
			break
		}
	}

	switch strings.ToLower(cond.Operator) {
	case "", "equals", "in":
		return anyPresent
	case "not_in":
		return !anyPresent
	default:
		return false
	}
}

// matchIntersection checks tag overlap between the context's tags and the
// condition's expected tags.
func matchIntersection(actual []string, cond model.Condition) bool {
	return matchMembership(actual, cond)
}

// matchNumeric applies numeric comparison operators.
func matchNumeric(actual float64, operator string, expected interface{}) bool {
	expectedFloat, ok := convertToFloat(expected)
	if !ok {
		return false
	}

	switch strings.ToLower(operator) {
	case "", "equals", "eq":
		return actual == expectedFloat
	case "gt":
		return actual > expectedFloat
	case "gte":
		return actual >= expectedFloat
	case "lt":
		return actual < expectedFloat
	case "lte":
		return actual <= expectedFloat
	default:
		return false
	}
}

// matchBool compares a boolean context attribute against the expected value,
// accepting native bools and "true"/"false" strings.
func matchBool(actual bool, expected interface{}) bool {
	switch v := expected.(type) {
	case bool:
		return actual == v
	case string:
		parsed, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return false
		}
		return actual == parsed
	case nil:
		// A bare boolean condition with no value asserts the flag is set.
		return actual
	default:
		return false
	}
}

// matchDateRange checks that now falls within {start, end} (RFC 3339 strings,
// both bounds optional).
func matchDateRange(now time.Time, expected interface{}) bool {
	bounds, ok := expected.(map[string]interface{})
	if !ok {
		return false
	}

	if startStr, ok := bounds["start"].(string); ok && startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil || now.Before(start) {
			return false
		}
	}
	if endStr, ok := bounds["end"].(string); ok && endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil || now.After(end) {
			return false
		}
	}
	return true
}

// matchTimeOfDay checks that now's clock time falls within {start, end}
// ("HH:MM" strings). Ranges where start > end wrap past midnight.
func matchTimeOfDay(now time.Time, expected interface{}) bool {
	bounds, ok := expected.(map[string]interface{})
	if !ok {
		return false
	}

	startStr, _ := bounds["start"].(string)
	endStr, _ := bounds["end"].(string)
	start, okStart := parseClock(startStr)
	end, okEnd := parseClock(endStr)
	if !okStart || !okEnd {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	if start <= end {
		return minutes >= start && minutes <= end
	}
	// Overnight window, e.g. 22:00-06:00.
	return minutes >= start || minutes <= end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// referrerDomain extracts the host portion of a referrer URL without
// requiring a full URL parse to succeed.
func referrerDomain(referrer string) string {
	domain := referrer
	if idx := strings.Index(domain, "://"); idx >= 0 {
		domain = domain[idx+3:]
	}
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.TrimPrefix(strings.ToLower(domain), "www.")
}

// lookupOption finds a selected option value by name, case-insensitively.
func lookupOption(options map[string]string, name string) (string, bool) {
	if v, ok := options[name]; ok {
		return v, true
	}
	for key, v := range options {
		if strings.EqualFold(key, name) {
			return v, true
		}
	}
	return "", false
}

// containsFold reports whether list contains value, case-insensitively.
func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// convertToFloat converts various numeric types to float64
func convertToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
