// Package semantics holds the static vocabulary of the quick-commerce schema:
// the keyword-to-table lexicon, intent categories, essential-table rules,
// join conditions, and per-intent column templates. All tables in this
// package are immutable after process start; accessors return copies or
// read-only views so callers cannot mutate shared state.
package semantics

// Intent is the coarse classification of a question's purpose.
type Intent int

// The closed set of intents, in enumeration order. Classification ties are
// broken by this order, so it must stay stable.
const (
	IntentPriceComparison Intent = iota
	IntentProductSearch
	IntentDiscountInquiry
	IntentAvailabilityCheck
	IntentAnalytics
	IntentComplexMultiTable
	IntentSimpleLookup
)

var intentNames = [...]string{
	IntentPriceComparison:   "price_comparison",
	IntentProductSearch:     "product_search",
	IntentDiscountInquiry:   "discount_inquiry",
	IntentAvailabilityCheck: "availability_check",
	IntentAnalytics:         "analytics",
	IntentComplexMultiTable: "complex_multi_table",
	IntentSimpleLookup:      "simple_lookup",
}

// String returns the wire name of the intent.
func (i Intent) String() string {
	if int(i) < 0 || int(i) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[i]
}

// ScoredIntents returns the intents that carry keyword sets, in enumeration
// order. IntentComplexMultiTable and IntentSimpleLookup are never scored:
// the former is the default when nothing matches, the latter is reserved for
// degraded fallback plans.
func ScoredIntents() []Intent {
	return []Intent{
		IntentPriceComparison,
		IntentProductSearch,
		IntentDiscountInquiry,
		IntentAvailabilityCheck,
		IntentAnalytics,
	}
}

var intentKeywords = map[Intent][]string{
	IntentPriceComparison:   {"price", "cost", "cheap", "expensive", "compare", "versus", "between"},
	IntentProductSearch:     {"product", "item", "goods", "find", "search"},
	IntentDiscountInquiry:   {"discount", "offer", "deal", "sale", "promotion"},
	IntentAvailabilityCheck: {"available", "stock", "inventory", "quantity"},
	IntentAnalytics:         {"popular", "trending", "analytics", "views", "top"},
}

// Keywords returns the keyword set that scores toward the given intent.
// The returned slice must not be modified.
func Keywords(i Intent) []string {
	return intentKeywords[i]
}
