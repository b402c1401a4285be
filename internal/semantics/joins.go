package semantics

// tablePair is an unordered key for the join-condition map; Lookup tries
// both directions.
type tablePair struct {
	A, B string
}

// joinConditions maps known table pairs to their FK join condition.
// Pairs absent from this map cannot be joined by the compiler.
var joinConditions = map[tablePair]string{
	{"products", "categories"}:                 "products.category_id = categories.id",
	{"products", "brands"}:                     "products.brand_id = brands.id",
	{"products", "platform_products"}:          "products.id = platform_products.product_id",
	{"platform_products", "platforms"}:         "platform_products.platform_id = platforms.id",
	{"platform_products", "prices"}:            "platform_products.id = prices.platform_product_id",
	{"platform_products", "inventory"}:         "platform_products.id = inventory.platform_product_id",
	{"discounts", "product_discounts"}:         "discounts.id = product_discounts.discount_id",
	{"product_discounts", "platform_products"}: "product_discounts.platform_product_id = platform_products.id",
	{"offers", "offer_products"}:               "offers.id = offer_products.offer_id",
	{"offer_products", "platform_products"}:    "offer_products.platform_product_id = platform_products.id",
	{"users", "orders"}:                        "users.id = orders.user_id",
	{"orders", "order_items"}:                  "orders.id = order_items.order_id",
	{"products", "reviews"}:                    "products.id = reviews.product_id",
	{"products", "popular_products"}:           "products.id = popular_products.product_id",
	{"products", "nutritional_info"}:           "products.id = nutritional_info.product_id",
	{"categories", "subcategories"}:            "categories.id = subcategories.category_id",
	{"products", "subcategories"}:              "products.subcategory_id = subcategories.id",
	{"platforms", "discounts"}:                 "platforms.id = discounts.platform_id",
	{"platforms", "offers"}:                    "platforms.id = offers.platform_id",
	{"platforms", "platform_stores"}:           "platforms.id = platform_stores.platform_id",
	{"platforms", "delivery_zones"}:            "platforms.id = delivery_zones.platform_id",
}

// JoinCondition returns the FK join condition for a pair of tables,
// trying both directions. The second return is false when the pair has no
// known join condition.
func JoinCondition(a, b string) (string, bool) {
	if cond, ok := joinConditions[tablePair{a, b}]; ok {
		return cond, true
	}
	cond, ok := joinConditions[tablePair{b, a}]
	return cond, ok
}
