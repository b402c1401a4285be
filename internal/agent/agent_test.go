package agent

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goplanner/internal/config"
	"github.com/dbsmedya/goplanner/internal/testutil"
)

func testConfig(maxTables int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Planner.MaxTables = maxTables
	cfg.Planner.MaxResults = 100
	return cfg
}

type stubAgent struct {
	answer  string
	err     error
	gotHint string
	calls   int
}

func (s *stubAgent) Answer(_ context.Context, _ string, planHint string) (string, error) {
	s.gotHint = planHint
	s.calls++
	return s.answer, s.err
}

func TestProcessExecutesAndCaches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := New(testConfig(3), testutil.QuickCommerceCatalog(t), db, nil, nil)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"platform_name", "sale_price"}).
			AddRow([]byte("Zepto"), 52.0).
			AddRow([]byte("Blinkit"), 54.0))

	result, err := e.Process(context.Background(), "cheapest milk")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Cached)
	assert.Equal(t, 2, result.Rows)
	assert.Contains(t, result.SQL, "ORDER BY prices.sale_price ASC")
	require.NotNil(t, result.Plan)
	assert.False(t, result.Plan.Degraded)

	// Second identical question is served from cache; no second query is
	// expected on the mock.
	again, err := e.Process(context.Background(), "Cheapest  MILK")
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, result.Rows, again.Rows)

	require.NoError(t, mock.ExpectationsWereMet())

	m := e.Metrics()
	assert.Equal(t, int64(1), m.Cache.Hits)
	assert.Equal(t, int64(1), m.Tables["prices"].Frequency)
}

func TestProcessValidationFailureWithoutFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Ten tables push the cost estimate past the ceiling.
	e := New(testConfig(10), testutil.QuickCommerceCatalog(t), db, nil, nil)

	_, err = e.Process(context.Background(), "cheapest milk on any platform")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Reasons)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessValidationFailureWithFallback(t *testing.T) {
	stub := &stubAgent{answer: "Milk is cheapest on Zepto."}
	e := New(testConfig(10), testutil.QuickCommerceCatalog(t), nil, stub, nil)

	result, err := e.Process(context.Background(), "cheapest milk on any platform")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Milk is cheapest on Zepto.", result.Answer)
	assert.Nil(t, result.Data)

	assert.Contains(t, stub.gotHint, "Query intent:")
	assert.Contains(t, stub.gotHint, "Relevant tables:")
}

func TestProcessFallbackAnswerCached(t *testing.T) {
	stub := &stubAgent{answer: "Milk is cheapest on Zepto."}
	e := New(testConfig(10), testutil.QuickCommerceCatalog(t), nil, stub, nil)

	first, err := e.Process(context.Background(), "cheapest milk on any platform")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Repeating the question is served from cache without a second LLM call.
	again, err := e.Process(context.Background(), "cheapest milk on any platform")
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, first.Answer, again.Answer)
	assert.Equal(t, 1, stub.calls)
}

func TestProcessFallbackErrorSurfacesValidation(t *testing.T) {
	stub := &stubAgent{err: errors.New("model unavailable")}
	e := New(testConfig(10), testutil.QuickCommerceCatalog(t), nil, stub, nil)

	_, err := e.Process(context.Background(), "cheapest milk on any platform")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestPlanOnly(t *testing.T) {
	e := New(testConfig(3), testutil.QuickCommerceCatalog(t), nil, nil, nil)

	plan, sqlText, reasons := e.PlanOnly("top 5 cheapest onions")
	require.NotNil(t, plan)
	assert.Empty(t, reasons)
	assert.Equal(t, 5, plan.Limit)
	assert.Contains(t, sqlText, "LIMIT 5")
}

func TestSuggestions(t *testing.T) {
	e := New(testConfig(5), testutil.QuickCommerceCatalog(t), nil, nil, nil)

	tables := e.SuggestTables("discount deals on bread")
	assert.NotEmpty(t, tables)
	assert.LessOrEqual(t, len(tables), 5)

	cols := e.SuggestColumns("sale price and discount")
	assert.NotEmpty(t, cols)
	assert.LessOrEqual(t, len(cols), 20)
}

func TestClearCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := New(testConfig(3), testutil.QuickCommerceCatalog(t), db, nil, nil)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(1))
	_, err = e.Process(context.Background(), "cheapest milk")
	require.NoError(t, err)

	e.ClearCache()
	assert.Equal(t, 0, e.Metrics().Cache.Size)

	// After clearing, the same question executes again.
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(1))
	result, err := e.Process(context.Background(), "cheapest milk")
	require.NoError(t, err)
	assert.False(t, result.Cached)

	require.NoError(t, mock.ExpectationsWereMet())
}
