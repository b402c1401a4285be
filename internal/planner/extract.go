package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dbsmedya/goplanner/internal/semantics"
)

// ClassifyIntent scores each scored intent by keyword occurrence: +1 per
// keyword appearing as a substring, +0.5 more when it appears as a whole
// word. Ties break by enumeration order; zero everywhere defaults to
// complex_multi_table.
func ClassifyIntent(question string) semantics.Intent {
	q := strings.ToLower(question)
	padded := " " + q + " "

	best := semantics.IntentComplexMultiTable
	bestScore := 0.0

	for _, intent := range semantics.ScoredIntents() {
		score := 0.0
		for _, kw := range semantics.Keywords(intent) {
			if strings.Contains(q, kw) {
				score += 1.0
			}
			if strings.Contains(padded, " "+kw+" ") {
				score += 0.5
			}
		}
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}

	return best
}

type filterRule struct {
	pattern *regexp.Regexp
	// build renders one predicate from the regex submatches.
	build func(m []string) string
}

var priceFilterRules = []filterRule{
	{regexp.MustCompile(`under[s]?\s*(\d+)`), func(m []string) string {
		return "prices.sale_price <= " + m[1]
	}},
	{regexp.MustCompile(`above[s]?\s*(\d+)`), func(m []string) string {
		return "prices.sale_price >= " + m[1]
	}},
	{regexp.MustCompile(`less than[s]?\s*(\d+)`), func(m []string) string {
		return "prices.sale_price < " + m[1]
	}},
	{regexp.MustCompile(`more than[s]?\s*(\d+)`), func(m []string) string {
		return "prices.sale_price > " + m[1]
	}},
	{regexp.MustCompile(`between[s]?\s*(\d+)\s*and\s*(\d+)`), func(m []string) string {
		return fmt.Sprintf("prices.sale_price BETWEEN %s AND %s", m[1], m[2])
	}},
	{regexp.MustCompile(`cheap`), func(m []string) string {
		return "prices.sale_price < (SELECT AVG(sale_price) FROM prices)"
	}},
}

var discountFilterRules = []filterRule{
	{regexp.MustCompile(`(\d+)%\s*off`), func(m []string) string {
		return "discounts.discount_percentage >= " + m[1]
	}},
	{regexp.MustCompile(`(\d+)%\s*discount`), func(m []string) string {
		return "discounts.discount_percentage >= " + m[1]
	}},
	{regexp.MustCompile(`discount`), func(m []string) string {
		return "discounts.discount_percentage > 0"
	}},
}

var timeFilterRules = []filterRule{
	{regexp.MustCompile(`today`), func(m []string) string {
		return "DATE(created_at) = CURRENT_DATE"
	}},
	{regexp.MustCompile(`yesterday`), func(m []string) string {
		return "DATE(created_at) = CURRENT_DATE - INTERVAL 1 DAY"
	}},
	{regexp.MustCompile(`last week`), func(m []string) string {
		return "created_at >= CURRENT_DATE - INTERVAL 7 DAY"
	}},
	{regexp.MustCompile(`last month`), func(m []string) string {
		return "created_at >= CURRENT_DATE - INTERVAL 30 DAY"
	}},
	{regexp.MustCompile(`recent`), func(m []string) string {
		return "created_at >= CURRENT_DATE - INTERVAL 7 DAY"
	}},
}

// ExtractFilters applies the fixed rule battery over independent domains:
// platform mentions, price comparisons, discount percentages, catalogued
// product and category names, and relative-time phrases. Every match appends
// one predicate; duplicates are not removed. Soft-delete tables present in
// the selection get their mandatory is_active predicates appended last.
func ExtractFilters(question string, tables []string) []string {
	q := strings.ToLower(question)
	var conditions []string

	for _, platform := range semantics.PlatformNames() {
		if strings.Contains(q, platform) {
			conditions = append(conditions, fmt.Sprintf("platforms.name LIKE '%%%s%%'", platform))
		}
	}

	for _, rule := range priceFilterRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(q, -1) {
			conditions = append(conditions, rule.build(m))
		}
	}

	for _, rule := range discountFilterRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(q, -1) {
			conditions = append(conditions, rule.build(m))
		}
	}

	for _, product := range semantics.ProductNames() {
		if strings.Contains(q, product) {
			conditions = append(conditions, fmt.Sprintf("products.name LIKE '%%%s%%'", product))
		}
	}
	for _, category := range semantics.CategoryNames() {
		if strings.Contains(q, category) {
			conditions = append(conditions, fmt.Sprintf("categories.name LIKE '%%%s%%'", category))
		}
	}
	if strings.Contains(q, "organic") {
		conditions = append(conditions, "product_attribute_values.value LIKE '%organic%'")
	}

	for _, rule := range timeFilterRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(q, -1) {
			conditions = append(conditions, rule.build(m))
		}
	}

	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}
	for _, t := range semantics.SoftDeleteTables() {
		if present[t] {
			conditions = append(conditions, t+".is_active = true")
		}
	}

	return conditions
}

type sortRule struct {
	phrase string
	keys   []string
}

// sortRules are evaluated in order; the first matching phrase wins.
var sortRules = []sortRule{
	{"cheapest", []string{"prices.sale_price ASC"}},
	{"most expensive", []string{"prices.sale_price DESC"}},
	{"highest rated", []string{"reviews.rating DESC"}},
	{"lowest rated", []string{"reviews.rating ASC"}},
	{"newest", []string{"created_at DESC"}},
	{"oldest", []string{"created_at ASC"}},
	{"popular", []string{"popular_products.view_count DESC"}},
	{"best deal", []string{"discounts.discount_percentage DESC"}},
	{"alphabetical", []string{"products.name ASC"}},
	{"by name", []string{"products.name ASC"}},
	{"by price", []string{"prices.sale_price ASC"}},
	{"by discount", []string{"discounts.discount_percentage DESC"}},
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// ExtractSorts returns the sort keys for a question. The first matching
// phrase rule wins; otherwise a topic default applies (price, discount,
// popularity), falling back to alphabetical product name.
func ExtractSorts(question string, tables []string) []string {
	q := strings.ToLower(question)

	for _, rule := range sortRules {
		if strings.Contains(q, rule.phrase) {
			return append([]string(nil), rule.keys...)
		}
	}

	switch {
	case containsAny(q, "price", "cost", "cheap"):
		return []string{"prices.sale_price ASC"}
	case containsAny(q, "discount", "deal", "offer"):
		return []string{"discounts.discount_percentage DESC"}
	case containsAny(q, "popular", "trending"):
		return []string{"popular_products.view_count DESC"}
	default:
		return []string{"products.name ASC"}
	}
}

var limitRules = []*regexp.Regexp{
	regexp.MustCompile(`top\s*(\d+)`),
	regexp.MustCompile(`first\s*(\d+)`),
	regexp.MustCompile(`show\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*result`),
	regexp.MustCompile(`limit\s*(\d+)`),
}

// DetermineLimit resolves the row limit: explicit numbers ("top N",
// "first N", "limit N") clipped to maxResults; "all"/"every" means
// maxResults; "few"/"some" means min(10, maxResults); otherwise
// min(50, maxResults).
func DetermineLimit(question string, maxResults int) int {
	q := strings.ToLower(question)

	for _, rule := range limitRules {
		if m := rule.FindStringSubmatch(q); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n < maxResults {
				return n
			}
			return maxResults
		}
	}

	switch {
	case containsAny(q, "all", "every"):
		return maxResults
	case containsAny(q, "few", "some"):
		return minInt(10, maxResults)
	default:
		return minInt(50, maxResults)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
