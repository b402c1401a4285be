package schema

import (
	"context"
	"sort"
)

// TableDef is a declarative table definition for StaticIntrospector.
type TableDef struct {
	Columns     []Column
	ForeignKeys []ForeignKey
	Indexes     []string
}

// StaticIntrospector serves a fixed in-memory schema definition. It backs
// offline planning (no database connection) and tests, mirroring the
// simulation mode the execution layer offers.
type StaticIntrospector struct {
	Defs map[string]TableDef
}

// ListTables returns the defined table names in sorted order.
func (s *StaticIntrospector) ListTables(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.Defs))
	for name := range s.Defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Columns returns the defined columns of a table.
func (s *StaticIntrospector) Columns(ctx context.Context, table string) ([]Column, error) {
	return s.Defs[table].Columns, nil
}

// ForeignKeys returns the defined FK constraints of a table.
func (s *StaticIntrospector) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	return s.Defs[table].ForeignKeys, nil
}

// Indexes returns the defined index names of a table.
func (s *StaticIntrospector) Indexes(ctx context.Context, table string) ([]string, error) {
	return s.Defs[table].Indexes, nil
}
