package semantics

// selectColumns maps each intent to its SELECT column template. The compiler
// filters a template down to the tables actually present in a plan and falls
// back to SELECT * when nothing survives.
var selectColumns = map[Intent][]string{
	IntentPriceComparison: {
		"products.name AS product_name",
		"platforms.name AS platform_name",
		"prices.regular_price",
		"prices.sale_price",
		"prices.discount_percentage",
	},
	IntentProductSearch: {
		"products.name AS product_name",
		"products.description",
		"categories.name AS category_name",
		"brands.name AS brand_name",
	},
	IntentDiscountInquiry: {
		"products.name AS product_name",
		"discounts.discount_type",
		"discounts.discount_value",
		"discounts.discount_percentage",
		"platforms.name AS platform_name",
	},
	IntentAvailabilityCheck: {
		"products.name AS product_name",
		"platforms.name AS platform_name",
		"inventory.quantity_available",
		"inventory.last_updated",
	},
	IntentAnalytics: {
		"products.name AS product_name",
		"popular_products.view_count",
		"popular_products.search_count",
		"popular_products.order_count",
	},
}

// defaultSelectColumns covers intents without a dedicated template
// (complex_multi_table and simple_lookup).
var defaultSelectColumns = []string{
	"products.name AS product_name",
	"prices.sale_price",
	"platforms.name AS platform_name",
}

// SelectColumns returns the SELECT column template for an intent.
// The returned slice must not be modified.
func SelectColumns(i Intent) []string {
	if cols, ok := selectColumns[i]; ok {
		return cols
	}
	return defaultSelectColumns
}
