package semantics

import "sort"

// lexicon maps domain keywords to the tables most likely to answer a
// question mentioning them. Matching is plain substring against the
// lowercased question, no stemming.
var lexicon = map[string][]string{
	// Product-related queries
	"product":     {"products", "product_variants", "product_images", "product_attributes", "product_attribute_values"},
	"item":        {"products", "product_variants", "platform_products"},
	"goods":       {"products", "categories", "brands"},
	"merchandise": {"products", "brands", "categories"},

	// Price-related queries
	"price":     {"prices", "price_history", "platform_products"},
	"cost":      {"prices", "price_history"},
	"amount":    {"prices", "orders", "order_items"},
	"money":     {"prices", "orders"},
	"rupees":    {"prices", "price_history"},
	"cheap":     {"prices", "discounts", "offers"},
	"expensive": {"prices", "price_history"},

	// Platform-related queries
	"platform":  {"platforms", "platform_stores", "platform_products"},
	"app":       {"platforms", "platform_stores"},
	"store":     {"platforms", "platform_stores"},
	"blinkit":   {"platforms", "platform_products", "prices"},
	"zepto":     {"platforms", "platform_products", "prices"},
	"instamart": {"platforms", "platform_products", "prices"},
	"bigbasket": {"platforms", "platform_products", "prices"},
	"dunzo":     {"platforms", "platform_products", "prices"},
	"grofers":   {"platforms", "platform_products", "prices"},

	// Discount-related queries
	"discount":  {"discounts", "product_discounts", "prices"},
	"offer":     {"offers", "offer_products", "discounts"},
	"deal":      {"offers", "discounts", "product_discounts"},
	"sale":      {"offers", "discounts", "prices"},
	"promotion": {"offers", "discounts"},

	// Category-related queries
	"category": {"categories", "subcategories", "products"},
	"type":     {"categories", "subcategories"},
	"kind":     {"categories", "product_attributes"},
	"brand":    {"brands", "products"},
	"company":  {"brands", "platforms"},

	// Inventory-related queries
	"stock":        {"inventory", "stock_movements"},
	"available":    {"inventory", "platform_products"},
	"availability": {"inventory", "delivery_slots"},
	"quantity":     {"inventory", "order_items"},

	// User-related queries
	"user":     {"users", "user_addresses", "user_preferences"},
	"customer": {"users", "orders", "reviews"},
	"account":  {"users", "admin_users"},
	"profile":  {"users", "user_preferences"},

	// Order-related queries
	"order":    {"orders", "order_items", "users"},
	"purchase": {"orders", "order_items"},
	"buy":      {"orders", "order_items"},
	"cart":     {"order_items", "user_favorites"},
	"checkout": {"orders", "order_items"},

	// Location-related queries
	"location": {"user_addresses", "delivery_zones", "platform_stores"},
	"address":  {"user_addresses", "delivery_zones"},
	"delivery": {"delivery_zones", "delivery_slots", "orders"},
	"zone":     {"delivery_zones", "platform_stores"},

	// Review-related queries
	"review":   {"reviews", "review_images"},
	"rating":   {"reviews", "products"},
	"comment":  {"reviews", "products"},
	"feedback": {"reviews", "users"},

	// Analytics-related queries
	"popular":   {"popular_products", "product_views"},
	"trending":  {"popular_products", "search_queries"},
	"search":    {"search_queries", "products"},
	"view":      {"product_views", "popular_products"},
	"analytics": {"popular_products", "search_queries", "product_views"},

	// Nutritional queries
	"nutrition": {"nutritional_info", "products"},
	"healthy":   {"nutritional_info", "product_attributes"},
	"organic":   {"product_attributes", "product_attribute_values"},
	"vegan":     {"product_attributes", "product_attribute_values"},
	"calories":  {"nutritional_info", "products"},
	"protein":   {"nutritional_info", "products"},

	// Time-related queries
	"today":     {"prices", "orders", "product_views"},
	"yesterday": {"price_history", "orders"},
	"recent":    {"price_history", "orders", "product_views"},
	"latest":    {"prices", "orders", "reviews"},
	"current":   {"prices", "inventory", "offers"},
	"now":       {"prices", "inventory", "delivery_slots"},

	// Comparison queries
	"compare":    {"prices", "platform_products", "platforms"},
	"difference": {"prices", "price_history"},
	"versus":     {"prices", "platform_products"},
	"between":    {"prices", "platform_products", "platforms"},
	"best":       {"prices", "discounts", "offers"},
	"worst":      {"prices", "reviews"},
	"top":        {"popular_products", "prices"},
	"bottom":     {"prices", "reviews"},

	// Product categories
	"vegetables": {"products", "categories"},
	"fruits":     {"products", "categories"},
	"dairy":      {"products", "categories"},
	"meat":       {"products", "categories"},
	"snacks":     {"products", "categories"},
	"beverages":  {"products", "categories"},
	"grocery":    {"products", "categories", "orders"},
	"food":       {"products", "categories", "nutritional_info"},

	// Common grocery items
	"onion":  {"products", "prices", "platform_products"},
	"potato": {"products", "prices", "platform_products"},
	"tomato": {"products", "prices", "platform_products"},
	"apple":  {"products", "prices", "platform_products"},
	"banana": {"products", "prices", "platform_products"},
	"milk":   {"products", "prices", "platform_products"},
	"bread":  {"products", "prices", "platform_products"},
	"rice":   {"products", "prices", "platform_products"},
}

// sortedKeywords is computed once so lexicon iteration is deterministic.
var sortedKeywords = func() []string {
	kws := make([]string, 0, len(lexicon))
	for kw := range lexicon {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}()

// LexiconKeywords returns all lexicon keywords in sorted order.
// The returned slice must not be modified.
func LexiconKeywords() []string {
	return sortedKeywords
}

// TablesFor returns the candidate tables for a lexicon keyword.
// The returned slice must not be modified.
func TablesFor(keyword string) ([]string, bool) {
	tables, ok := lexicon[keyword]
	return tables, ok
}

// PlatformNames lists the quick-commerce platforms recognized in questions,
// used for both filter extraction and essential-table forcing.
var platformNames = []string{"blinkit", "zepto", "instamart", "bigbasket", "dunzo", "grofers"}

// PlatformNames returns the recognized platform names.
// The returned slice must not be modified.
func PlatformNames() []string {
	return platformNames
}

// productNames are the catalogued product terms that map to a
// products.name predicate.
var productNames = []string{"onion", "potato", "tomato", "apple", "banana", "milk", "bread", "rice"}

// ProductNames returns the catalogued product terms.
// The returned slice must not be modified.
func ProductNames() []string {
	return productNames
}

// categoryNames are the catalogued category terms that map to a
// categories.name predicate.
var categoryNames = []string{"fruit", "vegetable", "dairy"}

// CategoryNames returns the catalogued category terms.
// The returned slice must not be modified.
func CategoryNames() []string {
	return categoryNames
}

// softDeleteTables use an is_active flag instead of row deletion; every plan
// touching them carries a mandatory is_active predicate.
var softDeleteTables = []string{"products", "prices", "discounts", "offers"}

// SoftDeleteTables returns the tables guarded by an is_active flag,
// in the order their predicates are appended.
func SoftDeleteTables() []string {
	return softDeleteTables
}
