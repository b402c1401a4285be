package compiler

import (
	"context"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goplanner/internal/graph"
	"github.com/dbsmedya/goplanner/internal/planner"
	"github.com/dbsmedya/goplanner/internal/selector"
	"github.com/dbsmedya/goplanner/internal/semantics"
	"github.com/dbsmedya/goplanner/internal/sqlutil"
	"github.com/dbsmedya/goplanner/internal/stats"
	"github.com/dbsmedya/goplanner/internal/testutil"
)

func TestCompileClauseOrder(t *testing.T) {
	c := New(nil, nil, time.Second, nil)

	plan := &planner.Plan{
		Intent: semantics.IntentPriceComparison,
		Tables: []string{"prices", "platform_products", "products", "platforms"},
		Joins: []graph.JoinPair{
			{Left: "prices", Right: "platform_products"},
			{Left: "platform_products", Right: "products"},
			{Left: "platform_products", Right: "platforms"},
		},
		Filters: []string{"products.name LIKE '%milk%'", "prices.is_active = true"},
		Sorts:   []string{"prices.sale_price ASC"},
		Limit:   50,
	}

	sqlText := c.Compile(plan)

	wantOrder := []string{"SELECT", "FROM prices", "LEFT JOIN platform_products",
		"LEFT JOIN products", "LEFT JOIN platforms", "WHERE", "ORDER BY", "LIMIT 50"}
	pos := -1
	for _, marker := range wantOrder {
		idx := strings.Index(sqlText, marker)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", marker, sqlText)
		assert.Greater(t, idx, pos, "%q out of order in:\n%s", marker, sqlText)
		pos = idx
	}

	assert.Contains(t, sqlText, "products.name AS product_name")
	assert.Contains(t, sqlText, "ON platform_products.id = prices.platform_product_id")
	assert.Contains(t, sqlText, "products.name LIKE '%milk%' AND prices.is_active = true")
}

func TestCompileSelectStarFallback(t *testing.T) {
	c := New(nil, nil, time.Second, nil)

	// Analytics template references none of these tables.
	plan := &planner.Plan{
		Intent: semantics.IntentAnalytics,
		Tables: []string{"users", "orders"},
		Joins:  []graph.JoinPair{{Left: "users", Right: "orders"}},
		Limit:  10,
	}

	sqlText := c.Compile(plan)
	assert.True(t, strings.HasPrefix(sqlText, "SELECT *"), sqlText)
}

func TestCompileDropsInvalidRefsAndUnknownJoins(t *testing.T) {
	c := New(nil, nil, time.Second, nil)

	plan := &planner.Plan{
		Intent: semantics.IntentSimpleLookup,
		Tables: []string{"products", "reviews"},
		Joins: []graph.JoinPair{
			{Left: "products", Right: "reviews"},
			{Left: "products", Right: "product_views"}, // no known condition
		},
		Filters: []string{
			"products.is_active = true",
			"discounts.discount_percentage > 0", // discounts not in plan
		},
		Sorts: []string{"prices.sale_price ASC", "products.name ASC"},
		Limit: 10,
	}

	sqlText := c.Compile(plan)

	assert.NotContains(t, sqlText, "product_views")
	assert.NotContains(t, sqlText, "discounts")
	assert.NotContains(t, sqlText, "prices.sale_price")
	assert.Contains(t, sqlText, "WHERE products.is_active = true")
	assert.Contains(t, sqlText, "ORDER BY products.name ASC")
}

func TestCompileSkipsClausesForUnjoinedTables(t *testing.T) {
	c := New(nil, nil, time.Second, nil)

	// The pair has an FK edge in the catalog but no join condition, so the
	// join is skipped; clauses referencing the unjoined table must go with it
	// even though it is listed in plan.Tables.
	plan := &planner.Plan{
		Intent: semantics.IntentProductSearch,
		Tables: []string{"products", "product_attribute_values"},
		Joins:  []graph.JoinPair{{Left: "products", Right: "product_attribute_values"}},
		Filters: []string{
			"product_attribute_values.value LIKE '%organic%'",
			"products.is_active = true",
		},
		Sorts: []string{"products.name ASC"},
		Limit: 50,
	}

	sqlText := c.Compile(plan)

	assert.NotContains(t, sqlText, "product_attribute_values")
	assert.Contains(t, sqlText, "WHERE products.is_active = true")
	assert.Contains(t, sqlText, "ORDER BY products.name ASC")
}

// Compiling a freshly created plan must never reference a table outside its
// FROM/JOIN set in WHERE or ORDER BY.
func TestCompileRoundTripProperty(t *testing.T) {
	cat := testutil.QuickCommerceCatalog(t)
	sel := selector.New(cat, stats.NewStore(), nil)
	p := planner.New(cat, sel, 5, nil)
	c := New(nil, nil, time.Second, nil)

	questions := []string{
		"cheapest milk on blinkit",
		"top 5 products with 20% off",
		"compare onion prices between zepto and instamart",
		"most popular dairy products today",
		"show all rice under 100",
		"organic",
	}

	for _, q := range questions {
		t.Run(q, func(t *testing.T) {
			plan := p.Create(q, 100)
			sqlText := c.Compile(plan)

			inPlan := make(map[string]bool)
			for _, tbl := range plan.Tables {
				inPlan[tbl] = true
			}

			var whereOn string
			if i := strings.Index(sqlText, "WHERE"); i >= 0 {
				whereOn = sqlText[i:]
			} else if i := strings.Index(sqlText, "ORDER BY"); i >= 0 {
				whereOn = sqlText[i:]
			}
			for _, ref := range sqlutil.TableRefs(whereOn) {
				assert.True(t, inPlan[ref], "clause references %q outside plan tables %v:\n%s", ref, plan.Tables, sqlText)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := New(db, nil, time.Second, nil)

	t.Run("rows materialized", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"product_name", "sale_price"}).
				AddRow([]byte("Milk 1L"), 54.0).
				AddRow([]byte("Milk 500ml"), 30.0))

		rs, err := c.Execute(context.Background(), "SELECT product_name, sale_price FROM products")
		require.NoError(t, err)
		assert.Equal(t, []string{"product_name", "sale_price"}, rs.Columns)
		require.Equal(t, 2, rs.Len())
		assert.Equal(t, "Milk 1L", rs.Rows[0]["product_name"])
		assert.Equal(t, 2, rs.Stats.RowCount)
	})

	t.Run("failure wrapped as ExecutionError", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

		_, err := c.Execute(context.Background(), "SELECT broken")
		require.Error(t, err)
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.False(t, execErr.Timeout)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWithoutConnection(t *testing.T) {
	c := New(nil, nil, time.Second, nil)
	_, err := c.Execute(context.Background(), "SELECT 1")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
}

func TestRecordStats(t *testing.T) {
	st := stats.NewStore()
	c := New(nil, st, time.Second, nil)

	plan := &planner.Plan{
		Intent: semantics.IntentPriceComparison,
		Tables: []string{"products", "prices"},
	}
	c.RecordStats(plan, 2*time.Second, 40)

	snap, ok := st.Table("products")
	require.True(t, ok)
	assert.Equal(t, int64(1), snap.Frequency)
	assert.InDelta(t, 1.0, snap.AvgSeconds, 1e-9)

	_, buckets := st.Snapshot()
	b := buckets["price_comparison_2"]
	assert.Equal(t, int64(1), b.Executions)
	assert.InDelta(t, 40.0, b.AvgRows, 1e-9)
}
