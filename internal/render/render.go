// Package render prints plans and result sets for the CLI commands.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goplanner/internal/planner"
	"github.com/dbsmedya/goplanner/internal/types"
)

// maxCellWidth keeps wide text columns from blowing out the table layout.
const maxCellWidth = 40

// Plan prints a query plan: intent, tables, join tree, predicates, ordering,
// limit, cost, and the execution stages.
func Plan(w io.Writer, plan *planner.Plan) {
	fmt.Fprintf(w, "\n=== Query Plan ===\n\n")

	if plan.Degraded {
		fmt.Fprintf(w, "%s\n\n", color.Yellow.Sprintf("DEGRADED: %s", plan.DegradedReason))
	}

	fmt.Fprintf(w, "Intent: %s\n", color.Cyan.Sprint(plan.Intent))
	fmt.Fprintf(w, "Tables (%d):\n", len(plan.Tables))
	for i, t := range plan.Tables {
		fmt.Fprintf(w, "  %d. %s\n", i+1, t)
	}

	if len(plan.Joins) > 0 {
		fmt.Fprintf(w, "Joins:\n")
		for _, j := range plan.Joins {
			fmt.Fprintf(w, "  %s -> %s\n", j.Left, j.Right)
		}
	}

	if len(plan.Filters) > 0 {
		fmt.Fprintf(w, "Filters:\n")
		for _, f := range plan.Filters {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if len(plan.Sorts) > 0 {
		fmt.Fprintf(w, "Sort: %s\n", strings.Join(plan.Sorts, ", "))
	}

	fmt.Fprintf(w, "Limit: %d\n", plan.Limit)
	fmt.Fprintf(w, "Estimated cost: %s\n", costColor(plan.EstimatedCost).Sprintf("%.1f", plan.EstimatedCost))

	fmt.Fprintf(w, "\nExecution stages:\n")
	for _, s := range plan.Steps {
		marker := " "
		if s.ValidationRequired {
			marker = "*"
		}
		fmt.Fprintf(w, "  %d.%s %-18s %s\n", s.Seq, marker, s.Action, s.Description)
	}
	fmt.Fprintln(w)
}

// costColor grades the estimate: green is cheap, yellow is getting close to
// the validation ceiling, red exceeds it.
func costColor(cost float64) color.Color {
	switch {
	case cost > 10.0:
		return color.Red
	case cost > 7.0:
		return color.Yellow
	default:
		return color.Green
	}
}

// SQL prints a compiled statement.
func SQL(w io.Writer, sqlText string) {
	fmt.Fprintf(w, "=== SQL ===\n\n%s\n\n", sqlText)
}

// Results prints a result set as an aligned table. Column widths are
// computed with display width so multi-byte product names stay aligned.
func Results(w io.Writer, rs *types.ResultSet) {
	if rs.Len() == 0 {
		fmt.Fprintln(w, "No rows returned.")
		return
	}

	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	cells := make([][]string, rs.Len())
	for r, row := range rs.Rows {
		cells[r] = make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			cell := formatValue(row[col])
			cell = runewidth.Truncate(cell, maxCellWidth, "...")
			cells[r][i] = cell
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for i, col := range rs.Columns {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, color.Bold.Sprint(runewidth.FillRight(col, widths[i])))
	}
	fmt.Fprintln(w)
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range cells {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%d rows (%.3fs)\n", rs.Stats.RowCount, rs.Stats.Elapsed.Seconds())
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
