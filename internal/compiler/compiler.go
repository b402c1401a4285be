// Package compiler turns a validated query plan into a literal SQL
// statement, executes it, and feeds execution statistics back into the
// selection and planning layers.
package compiler

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/planner"
	"github.com/dbsmedya/goplanner/internal/semantics"
	"github.com/dbsmedya/goplanner/internal/sqlutil"
	"github.com/dbsmedya/goplanner/internal/stats"
	"github.com/dbsmedya/goplanner/internal/types"
)

// ExecutionError wraps a failed or timed-out SQL execution. It is safe to
// retry with a different or simplified plan.
type ExecutionError struct {
	Message string
	Timeout bool
	Err     error
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Compiler synthesizes and executes SQL for query plans.
type Compiler struct {
	db      *sql.DB
	stats   *stats.Store
	logger  *logger.Logger
	timeout time.Duration
}

// New creates a Compiler. db may be nil for compile-only use (the plan
// command); Execute then fails with an ExecutionError.
func New(db *sql.DB, st *stats.Store, timeout time.Duration, log *logger.Logger) *Compiler {
	if log == nil {
		log = logger.NewDefault()
	}
	if st == nil {
		st = stats.NewStore()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Compiler{
		db:      db,
		stats:   st,
		logger:  log,
		timeout: timeout,
	}
}

// Compile deterministically renders a plan as SQL. Clause order is fixed:
// SELECT, FROM, LEFT JOINs, WHERE, ORDER BY, LIMIT. Join pairs without a
// known condition are skipped and logged; SELECT, WHERE, and ORDER BY are
// then filtered against the tables actually joined, so a skipped join can
// never leave a clause referencing a table absent from FROM/JOIN.
func (c *Compiler) Compile(plan *planner.Plan) string {
	anchor := plan.Anchor()
	realized := map[string]bool{anchor: true}

	var joinClauses []string
	for _, j := range plan.Joins {
		cond, ok := semantics.JoinCondition(j.Left, j.Right)
		if !ok {
			c.logger.Warnf("No join condition for pair (%s, %s), skipping join", j.Left, j.Right)
			continue
		}
		if !realized[j.Left] {
			c.logger.Warnf("Join source %s was never joined, skipping pair (%s, %s)", j.Left, j.Left, j.Right)
			continue
		}
		joinClauses = append(joinClauses, fmt.Sprintf("LEFT JOIN %s ON %s", j.Right, cond))
		realized[j.Right] = true
	}

	var b strings.Builder

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(c.selectClause(plan, realized), ", "))

	b.WriteString("\nFROM ")
	b.WriteString(anchor)

	for _, jc := range joinClauses {
		b.WriteString("\n")
		b.WriteString(jc)
	}

	if where := validRefs(plan.Filters, realized); len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	if orderBy := validRefs(plan.Sorts, realized); len(orderBy) > 0 {
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(orderBy, ", "))
	}

	if plan.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", plan.Limit)
	}

	return b.String()
}

// selectClause filters the intent's column template down to the realized
// join set, falling back to * when nothing survives.
func (c *Compiler) selectClause(plan *planner.Plan, present map[string]bool) []string {
	var cols []string
	for _, col := range semantics.SelectColumns(plan.Intent) {
		refs := sqlutil.TableRefs(col)
		if len(refs) == 1 && present[refs[0]] {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return []string{"*"}
	}
	return cols
}

// validRefs keeps only expressions whose table references are all present.
// Expressions with no qualified reference (e.g. bare created_at predicates)
// pass through unchanged.
func validRefs(exprs []string, present map[string]bool) []string {
	var kept []string
	for _, expr := range exprs {
		valid := true
		for _, ref := range sqlutil.TableRefs(expr) {
			if !present[ref] {
				valid = false
				break
			}
		}
		if valid {
			kept = append(kept, expr)
		}
	}
	return kept
}

// Execute runs the SQL under the configured timeout and materializes the
// rows. Any failure comes back as an *ExecutionError.
func (c *Compiler) Execute(ctx context.Context, sqlText string) (*types.ResultSet, error) {
	if c.db == nil {
		return nil, &ExecutionError{Message: "no database connection"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, wrapExecError(ctx, "query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapExecError(ctx, "failed to read result columns", err)
	}

	result := &types.ResultSet{Columns: columns}
	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, wrapExecError(ctx, "failed to scan row", err)
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			// Drivers hand back []byte for text columns; convert for display.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapExecError(ctx, "row iteration failed", err)
	}

	result.Stats = types.ExecStats{
		Elapsed:  time.Since(start),
		RowCount: len(result.Rows),
	}
	return result, nil
}

func wrapExecError(ctx context.Context, msg string, err error) *ExecutionError {
	timeout := ctx.Err() == context.DeadlineExceeded
	if timeout {
		msg = msg + ": timed out"
	}
	return &ExecutionError{
		Message: fmt.Sprintf("%s: %v", msg, err),
		Timeout: timeout,
		Err:     err,
	}
}

// RecordStats feeds one completed execution back into the statistics store.
// Latency is attributed evenly across the plan's tables.
func (c *Compiler) RecordStats(plan *planner.Plan, elapsed time.Duration, rowCount int) {
	c.stats.RecordPlan(plan.Intent, len(plan.Tables), elapsed, rowCount)

	if len(plan.Tables) == 0 {
		return
	}
	share := elapsed / time.Duration(len(plan.Tables))
	for _, t := range plan.Tables {
		c.stats.RecordTable(t, share)
	}
}
