package planner

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/goplanner/internal/graph"
	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/schema"
	"github.com/dbsmedya/goplanner/internal/selector"
	"github.com/dbsmedya/goplanner/internal/semantics"
	"github.com/dbsmedya/goplanner/internal/sqlutil"
)

// Validation ceilings. Plans exceeding either are rejected, not clamped.
const (
	maxEstimatedCost = 10.0
	maxLimitCeiling  = 10000
)

// expensiveOps raise the cost estimate when they appear in a filter.
var expensiveOps = []string{"LIKE", "AVG", "COUNT", "GROUP BY", "ORDER BY"}

// Planner builds query plans from natural-language questions.
type Planner struct {
	catalog   *schema.Catalog
	selector  *selector.Selector
	logger    *logger.Logger
	maxTables int
}

// New creates a Planner over the given catalog and selector.
func New(cat *schema.Catalog, sel *selector.Selector, maxTables int, log *logger.Logger) *Planner {
	if log == nil {
		log = logger.NewDefault()
	}
	if maxTables <= 0 {
		maxTables = 10
	}
	return &Planner{
		catalog:   cat,
		selector:  sel,
		logger:    log,
		maxTables: maxTables,
	}
}

// Create builds a fully formed plan for a question. Planning never returns
// an error: when the catalog is empty the fixed fallback plan is returned
// with Degraded set. Callers must still run Validate before compiling.
func (p *Planner) Create(question string, maxResults int) *Plan {
	if maxResults <= 0 {
		maxResults = 1000
	}

	if p.catalog.Len() == 0 {
		p.logger.WithQuestion(question).Warn("Schema catalog is empty, producing fallback plan")
		return p.fallbackPlan(maxResults, "schema catalog is empty")
	}

	intent := ClassifyIntent(question)
	tables := p.selector.SelectTables(question, p.maxTables)
	joins, orphans := p.selector.JoinPath(tables)

	// Orphans have no foreign-key path to the anchor; keeping them would
	// force a cross join at compile time, so they are dropped.
	if len(orphans) > 0 {
		p.logger.WithQuestion(question).Warnf("Dropping %d unreachable tables from plan: %v", len(orphans), orphans)
		tables = dropTables(tables, orphans)
	}
	if len(tables) == 0 {
		return p.fallbackPlan(maxResults, "no joinable tables remained after orphan removal")
	}

	// A graph edge proves FK connectivity, not compilability: the compiler
	// only emits joins it has a condition for. Tables cut off by a missing
	// condition are dropped before filters are extracted against them.
	joins, unjoinable := realizeJoins(tables, joins)
	if len(unjoinable) > 0 {
		p.logger.WithQuestion(question).Warnf("Dropping %d tables with no usable join condition: %v", len(unjoinable), unjoinable)
		tables = dropTables(tables, unjoinable)
	}

	filters := ExtractFilters(question, tables)
	sorts := ExtractSorts(question, tables)
	limit := DetermineLimit(question, maxResults)

	plan := &Plan{
		Intent:        intent,
		Tables:        tables,
		Joins:         joins,
		Filters:       filters,
		Sorts:         sorts,
		Limit:         limit,
		Steps:         buildSteps(joins, filters),
		Checks:        buildChecks(tables, joins, filters),
		EstimatedCost: estimateCost(tables, joins, filters),
	}

	p.Optimize(plan)

	p.logger.WithQuestion(question).WithIntent(intent.String()).
		Debugf("Plan created: %d tables, %d joins, %d filters, cost %.1f",
			len(plan.Tables), len(plan.Joins), len(plan.Filters), plan.EstimatedCost)

	return plan
}

// dropTables removes the named tables, preserving order.
func dropTables(tables, drop []string) []string {
	gone := make(map[string]bool, len(drop))
	for _, t := range drop {
		gone[t] = true
	}
	kept := tables[:0]
	for _, t := range tables {
		if !gone[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

// realizeJoins keeps only join pairs that carry a known join condition and
// whose left side is still reachable from the anchor. Tables cut off by a
// discarded pair are returned for removal, the same policy as orphans.
func realizeJoins(tables []string, joins []graph.JoinPair) ([]graph.JoinPair, []string) {
	if len(tables) == 0 {
		return nil, nil
	}

	reachable := map[string]bool{tables[0]: true}
	var kept []graph.JoinPair
	for _, j := range joins {
		if _, ok := semantics.JoinCondition(j.Left, j.Right); !ok || !reachable[j.Left] {
			continue
		}
		kept = append(kept, j)
		reachable[j.Right] = true
	}

	var cut []string
	for _, t := range tables {
		if !reachable[t] {
			cut = append(cut, t)
		}
	}
	return kept, cut
}

// buildSteps produces the fixed execution stages. The join and filter
// validation stages are emitted only when the plan has joins or filters.
func buildSteps(joins []graph.JoinPair, filters []string) []Step {
	steps := []Step{{
		Seq:                1,
		Action:             "validate_tables",
		Description:        "Validate selected tables exist and are accessible",
		ValidationRequired: true,
	}}
	if len(joins) > 0 {
		steps = append(steps, Step{
			Seq:                2,
			Action:             "validate_joins",
			Description:        "Validate join relationships and foreign keys",
			ValidationRequired: true,
		})
	}
	if len(filters) > 0 {
		steps = append(steps, Step{
			Seq:                3,
			Action:             "validate_filters",
			Description:        "Validate filter conditions and column references",
			ValidationRequired: true,
		})
	}
	steps = append(steps,
		Step{Seq: 4, Action: "construct_query", Description: "Construct optimized SQL query"},
		Step{Seq: 5, Action: "execute_query", Description: "Execute query with performance monitoring"},
		Step{Seq: 6, Action: "process_results", Description: "Process and format query results"},
	)
	return steps
}

// buildChecks produces the validation checklist: existence per table, column
// existence per filter reference, join feasibility per table pair, and the
// two generic complexity checks.
func buildChecks(tables []string, joins []graph.JoinPair, filters []string) []string {
	var checks []string

	for _, t := range tables {
		checks = append(checks, "table_exists:"+t)
	}
	for _, f := range filters {
		for _, ref := range sqlutil.ColumnRefs(f) {
			checks = append(checks, "column_exists:"+ref)
		}
	}
	for i, a := range tables {
		for _, b := range tables[i+1:] {
			checks = append(checks, fmt.Sprintf("join_possible:%s,%s", a, b))
		}
	}
	checks = append(checks, "query_complexity:acceptable", "estimated_rows:within_limits")

	return checks
}

// estimateCost is monotonic in table, join, and filter counts, with a 0.5
// surcharge per filter carrying an expensive operator.
func estimateCost(tables []string, joins []graph.JoinPair, filters []string) float64 {
	cost := 1.0
	cost += float64(len(tables)) * 0.5
	cost += float64(len(joins)) * 1.0
	cost += float64(len(filters)) * 0.2

	for _, f := range filters {
		upper := strings.ToUpper(f)
		for _, op := range expensiveOps {
			if strings.Contains(upper, op) {
				cost += 0.5
			}
		}
	}
	return cost
}

// fallbackPlan is the fixed degraded plan used when normal planning cannot
// proceed: the three-table price chain, soft-delete filters, alphabetical
// sort, and a conservative limit.
func (p *Planner) fallbackPlan(maxResults int, reason string) *Plan {
	return &Plan{
		Intent: semantics.IntentSimpleLookup,
		Tables: semantics.FallbackTables(),
		Joins: []graph.JoinPair{
			{Left: "prices", Right: "platform_products"},
			{Left: "platform_products", Right: "products"},
		},
		Filters:       []string{"products.is_active = true", "prices.is_active = true"},
		Sorts:         []string{"products.name ASC"},
		Limit:         minInt(50, maxResults),
		EstimatedCost: 2.0,
		Steps: []Step{{
			Seq:         1,
			Action:      "fallback_query",
			Description: "Execute fallback query",
		}},
		Checks:         []string{"table_exists:products", "table_exists:prices"},
		Degraded:       true,
		DegradedReason: reason,
	}
}

// Validate checks a plan against the live catalog and the cost and limit
// ceilings. All failures are collected; the error list is never truncated
// at the first problem.
func (p *Planner) Validate(plan *Plan) (bool, []string) {
	var errs []string

	for _, t := range plan.Tables {
		if !p.catalog.Exists(t) {
			errs = append(errs, fmt.Sprintf("table %q does not exist", t))
		}
	}
	for _, j := range plan.Joins {
		if !p.catalog.Exists(j.Left) {
			errs = append(errs, fmt.Sprintf("join table %q does not exist", j.Left))
		}
		if !p.catalog.Exists(j.Right) {
			errs = append(errs, fmt.Sprintf("join table %q does not exist", j.Right))
		}
	}
	if plan.EstimatedCost > maxEstimatedCost {
		errs = append(errs, fmt.Sprintf("query cost too high: %.1f", plan.EstimatedCost))
	}
	if plan.Limit > maxLimitCeiling {
		errs = append(errs, fmt.Sprintf("result limit too high: %d", plan.Limit))
	}

	return len(errs) == 0, errs
}
