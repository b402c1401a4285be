// Package sqlutil provides SQL helper functions for GoPlanner.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a MySQL identifier (table name, column name) with backticks.
// It escapes any existing backticks by doubling them.
// Example: "my_table" -> "`my_table`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex matches valid MySQL identifier characters.
// For safety we restrict to alphanumeric and underscore only.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name is a valid MySQL identifier.
// This is a defense-in-depth measure against SQL injection.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteQualified quotes a "table.column" reference, quoting each part
// separately. A bare name without a dot is quoted as a single identifier.
func QuoteQualified(ref string) string {
	table, column, ok := strings.Cut(ref, ".")
	if !ok {
		return QuoteIdentifier(ref)
	}
	return QuoteIdentifier(table) + "." + QuoteIdentifier(column)
}

// qualifiedRefRegex matches table.column references inside a SQL expression.
var qualifiedRefRegex = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\.[a-zA-Z_][a-zA-Z0-9_]*`)

// TableRefs extracts the distinct table names referenced as "table.column"
// inside a SQL expression, in order of first appearance. Used to verify that
// predicates and sort keys only touch tables present in a plan.
func TableRefs(expr string) []string {
	seen := make(map[string]bool)
	var tables []string
	for _, m := range qualifiedRefRegex.FindAllStringSubmatch(expr, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			tables = append(tables, m[1])
		}
	}
	return tables
}

// ColumnRefs extracts the distinct "table.column" references inside a SQL
// expression, in order of first appearance.
func ColumnRefs(expr string) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, m := range qualifiedRefRegex.FindAllString(expr, -1) {
		if !seen[m] {
			seen[m] = true
			refs = append(refs, m)
		}
	}
	return refs
}
