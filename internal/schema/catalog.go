package schema

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/goplanner/internal/logger"
)

// ErrSchemaUnavailable indicates the backing store could not be introspected.
// Fatal at startup; never retried silently.
var ErrSchemaUnavailable = errors.New("schema unavailable")

// TableMeta holds the catalog entry for a single table.
// Columns is declaration-ordered (name -> declared type); the remaining
// fields are read-only after load.
type TableMeta struct {
	Name        string
	Columns     *orderedmap.OrderedMap[string, string]
	ForeignKeys []ForeignKey
	Indexes     []string
	PrimaryKey  []string
}

// snapshot is one immutable view of the schema. A reload builds a complete
// new snapshot before publishing it.
type snapshot struct {
	tables map[string]*TableMeta
	names  []string // sorted
}

// Catalog introspects the target schema once and exposes it in memory.
// All read accessors are O(1) (or O(result)) against the current snapshot
// and safe for unsynchronized concurrent use.
type Catalog struct {
	intros Introspector
	snap   atomic.Pointer[snapshot]
	logger *logger.Logger
}

// NewCatalog creates an empty catalog; call Load before use.
func NewCatalog(intros Introspector, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewDefault()
	}
	c := &Catalog{intros: intros, logger: log}
	c.snap.Store(&snapshot{tables: map[string]*TableMeta{}})
	return c
}

// Load introspects the full schema and atomically replaces the in-memory
// snapshot. On failure the previous snapshot stays in place and the error
// wraps ErrSchemaUnavailable.
func (c *Catalog) Load(ctx context.Context) error {
	names, err := c.intros.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	next := &snapshot{
		tables: make(map[string]*TableMeta, len(names)),
		names:  names,
	}

	for _, name := range names {
		cols, err := c.intros.Columns(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
		}
		fks, err := c.intros.ForeignKeys(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
		}
		idxs, err := c.intros.Indexes(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
		}

		meta := &TableMeta{
			Name:        name,
			Columns:     orderedmap.NewOrderedMap[string, string](),
			ForeignKeys: fks,
			Indexes:     idxs,
		}
		for _, col := range cols {
			meta.Columns.Set(col.Name, col.Type)
			if col.PrimaryKey {
				meta.PrimaryKey = append(meta.PrimaryKey, col.Name)
			}
		}
		next.tables[name] = meta
	}

	c.snap.Store(next)
	c.logger.Infof("Schema catalog loaded: %d tables", len(names))
	return nil
}

// Exists reports whether the table is present in the catalog.
func (c *Catalog) Exists(table string) bool {
	_, ok := c.snap.Load().tables[table]
	return ok
}

// Tables returns all table names in sorted order.
func (c *Catalog) Tables() []string {
	names := c.snap.Load().names
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Len returns the number of tables in the catalog.
func (c *Catalog) Len() int {
	return len(c.snap.Load().tables)
}

// Table returns the full catalog entry for a table, or nil if absent.
// The returned value must be treated as read-only.
func (c *Catalog) Table(name string) *TableMeta {
	return c.snap.Load().tables[name]
}

// ColumnsOf returns the declaration-ordered column map of a table, or nil.
// The returned map must be treated as read-only.
func (c *Catalog) ColumnsOf(table string) *orderedmap.OrderedMap[string, string] {
	if meta := c.Table(table); meta != nil {
		return meta.Columns
	}
	return nil
}

// ForeignKeysOf returns the FK constraints owned by a table.
func (c *Catalog) ForeignKeysOf(table string) []ForeignKey {
	if meta := c.Table(table); meta != nil {
		return meta.ForeignKeys
	}
	return nil
}

// IndexesOf returns the index names of a table.
func (c *Catalog) IndexesOf(table string) []string {
	if meta := c.Table(table); meta != nil {
		return meta.Indexes
	}
	return nil
}

// PrimaryKeyOf returns the primary-key column set of a table.
func (c *Catalog) PrimaryKeyOf(table string) []string {
	if meta := c.Table(table); meta != nil {
		return meta.PrimaryKey
	}
	return nil
}
