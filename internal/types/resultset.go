// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "time"

// ResultSet represents the rows returned by an executed query.
// Columns preserves the SELECT order; each row maps column name to value.
type ResultSet struct {
	Columns []string
	Rows    []map[string]interface{}
	Stats   ExecStats
}

// ExecStats contains statistics about a single query execution.
type ExecStats struct {
	Elapsed  time.Duration // Wall time for the execution
	RowCount int           // Rows returned
}

// Len returns the number of rows in the result set.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}
