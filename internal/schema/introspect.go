// Package schema provides the in-memory schema catalog for GoPlanner.
// The catalog is introspected once at startup and exposed as an immutable
// snapshot; reload atomically replaces the snapshot so concurrent readers
// never observe a partial update.
package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// ForeignKey describes an FK constraint owned by a table.
type ForeignKey struct {
	Column    string // Local column
	RefTable  string // Referenced table
	RefColumn string // Referenced column
}

// Introspector reads schema metadata from a backing store.
// The production implementation queries information_schema; tests substitute
// a mock.
type Introspector interface {
	ListTables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]Column, error)
	ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error)
	Indexes(ctx context.Context, table string) ([]string, error)
}

// MySQLIntrospector implements Introspector over information_schema.
type MySQLIntrospector struct {
	db *sql.DB
}

// NewMySQLIntrospector creates an introspector for the given connection.
func NewMySQLIntrospector(db *sql.DB) *MySQLIntrospector {
	return &MySQLIntrospector{db: db}
}

// ListTables returns all base table names of the current database schema.
func (m *MySQLIntrospector) ListTables(ctx context.Context) ([]string, error) {
	const q = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := m.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns returns the columns of a table in declaration order.
func (m *MySQLIntrospector) Columns(ctx context.Context, table string) ([]Column, error) {
	const q = `SELECT column_name, column_type, is_nullable, column_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := m.db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var name, typ, nullable, key string
		if err := rows.Scan(&name, &typ, &nullable, &key); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		cols = append(cols, Column{
			Name:       name,
			Type:       typ,
			Nullable:   nullable == "YES",
			PrimaryKey: key == "PRI",
		})
	}
	return cols, rows.Err()
}

// ForeignKeys returns the FK constraints owned by a table.
func (m *MySQLIntrospector) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	const q = `SELECT column_name, referenced_table_name, referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = DATABASE() AND table_name = ?
		  AND referenced_table_name IS NOT NULL
		ORDER BY constraint_name, ordinal_position`

	rows, err := m.db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key of %s: %w", table, err)
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

// Indexes returns the distinct index names of a table, primary key included.
func (m *MySQLIntrospector) Indexes(ctx context.Context, table string) ([]string, error) {
	const q = `SELECT DISTINCT index_name FROM information_schema.statistics
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY index_name`

	rows, err := m.db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, fmt.Errorf("indexes of %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan index of %s: %w", table, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
