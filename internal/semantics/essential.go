package semantics

// EssentialRule forces a fixed table set into the selection when any of its
// trigger keywords appears in the question, regardless of relevance score.
// This guarantees the planner never omits tables required for a valid join
// chain on common intents.
type EssentialRule struct {
	Keywords []string
	Tables   []string
}

var essentialRules = []EssentialRule{
	// Price comparison needs the full product->platform->price chain.
	{
		Keywords: []string{"price", "cost", "cheap", "expensive", "compare"},
		Tables:   []string{"prices", "platform_products", "platforms"},
	},
	// Product lookups always join through categories.
	{
		Keywords: []string{"product", "item", "goods"},
		Tables:   []string{"products", "categories"},
	},
	// Platform-specific questions need the mapping tables.
	{
		Keywords: []string{"blinkit", "zepto", "instamart", "bigbasket"},
		Tables:   []string{"platforms", "platform_products", "prices"},
	},
	// Discount questions span three tables.
	{
		Keywords: []string{"discount", "offer", "deal", "sale"},
		Tables:   []string{"discounts", "offers", "product_discounts"},
	},
}

// EssentialRules returns the essential-table rules in evaluation order.
// The returned slice must not be modified.
func EssentialRules() []EssentialRule {
	return essentialRules
}

// FallbackTables is the hard-coded minimal table set used when selection or
// planning cannot proceed normally.
func FallbackTables() []string {
	return []string{"products", "prices", "platforms"}
}
