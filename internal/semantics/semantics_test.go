package semantics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentString(t *testing.T) {
	assert.Equal(t, "price_comparison", IntentPriceComparison.String())
	assert.Equal(t, "complex_multi_table", IntentComplexMultiTable.String())
	assert.Equal(t, "simple_lookup", IntentSimpleLookup.String())
	assert.Equal(t, "unknown", Intent(99).String())
}

func TestScoredIntentsOrder(t *testing.T) {
	scored := ScoredIntents()
	assert.Equal(t, []Intent{
		IntentPriceComparison,
		IntentProductSearch,
		IntentDiscountInquiry,
		IntentAvailabilityCheck,
		IntentAnalytics,
	}, scored)

	for _, intent := range scored {
		assert.NotEmpty(t, Keywords(intent), "scored intent %s must carry keywords", intent)
	}
	assert.Empty(t, Keywords(IntentComplexMultiTable))
	assert.Empty(t, Keywords(IntentSimpleLookup))
}

func TestLexiconKeywordsSortedAndResolvable(t *testing.T) {
	kws := LexiconKeywords()
	assert.NotEmpty(t, kws)
	for i := 1; i < len(kws); i++ {
		assert.Less(t, kws[i-1], kws[i], "keywords must be sorted")
	}
	for _, kw := range kws {
		tables, ok := TablesFor(kw)
		assert.True(t, ok)
		assert.NotEmpty(t, tables, "keyword %q has no tables", kw)
	}
}

func TestJoinConditionSymmetric(t *testing.T) {
	fwd, ok := JoinCondition("products", "categories")
	assert.True(t, ok)
	rev, ok := JoinCondition("categories", "products")
	assert.True(t, ok)
	assert.Equal(t, fwd, rev)

	_, ok = JoinCondition("products", "delivery_slots")
	assert.False(t, ok)
}

func TestJoinConditionsReferenceTheirPair(t *testing.T) {
	for pair, cond := range joinConditions {
		assert.True(t, strings.Contains(cond, pair.A+".") || strings.Contains(cond, pair.B+"."),
			"condition %q does not reference its pair %v", cond, pair)
	}
}

func TestSelectColumns(t *testing.T) {
	assert.Contains(t, SelectColumns(IntentPriceComparison), "prices.sale_price")
	assert.Contains(t, SelectColumns(IntentAnalytics), "popular_products.view_count")

	// Unscored intents fall back to the default template.
	assert.Equal(t, SelectColumns(IntentComplexMultiTable), SelectColumns(IntentSimpleLookup))
	assert.Contains(t, SelectColumns(IntentSimpleLookup), "products.name AS product_name")
}

func TestEssentialRules(t *testing.T) {
	rules := EssentialRules()
	assert.Len(t, rules, 4)
	for _, r := range rules {
		assert.NotEmpty(t, r.Keywords)
		assert.NotEmpty(t, r.Tables)
	}
}

func TestFallbackTablesIsCopy(t *testing.T) {
	a := FallbackTables()
	a[0] = "mutated"
	assert.Equal(t, []string{"products", "prices", "platforms"}, FallbackTables())
}
