package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticCatalog(t *testing.T, defs map[string]TableDef) *Catalog {
	t.Helper()
	cat := NewCatalog(&StaticIntrospector{Defs: defs}, nil)
	require.NoError(t, cat.Load(context.Background()))
	return cat
}

func TestCatalogLoad(t *testing.T) {
	cat := staticCatalog(t, map[string]TableDef{
		"products": {
			Columns: []Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "name", Type: "varchar(255)"},
				{Name: "category_id", Type: "int", Nullable: true},
			},
			ForeignKeys: []ForeignKey{{Column: "category_id", RefTable: "categories", RefColumn: "id"}},
			Indexes:     []string{"PRIMARY", "idx_products_name"},
		},
		"categories": {
			Columns: []Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "name", Type: "varchar(255)"},
			},
			Indexes: []string{"PRIMARY"},
		},
	})

	assert.Equal(t, 2, cat.Len())
	assert.True(t, cat.Exists("products"))
	assert.False(t, cat.Exists("warehouses"))
	assert.Equal(t, []string{"categories", "products"}, cat.Tables())

	cols := cat.ColumnsOf("products")
	require.NotNil(t, cols)
	assert.Equal(t, []string{"id", "name", "category_id"}, cols.Keys(), "column order must be preserved")
	typ, ok := cols.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "varchar(255)", typ)

	assert.Equal(t, []string{"id"}, cat.PrimaryKeyOf("products"))
	require.Len(t, cat.ForeignKeysOf("products"), 1)
	assert.Equal(t, "categories", cat.ForeignKeysOf("products")[0].RefTable)
	assert.Nil(t, cat.ColumnsOf("missing"))
}

type failingIntrospector struct {
	StaticIntrospector
}

func (f *failingIntrospector) ListTables(ctx context.Context) ([]string, error) {
	return nil, errors.New("connection refused")
}

func TestCatalogLoadFailure(t *testing.T) {
	cat := NewCatalog(&failingIntrospector{}, nil)
	err := cat.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaUnavailable)
	assert.Equal(t, 0, cat.Len())
}

func TestCatalogReloadAtomicReplace(t *testing.T) {
	intros := &StaticIntrospector{Defs: map[string]TableDef{
		"products": {Columns: []Column{{Name: "id", Type: "int", PrimaryKey: true}}},
	}}
	cat := NewCatalog(intros, nil)
	require.NoError(t, cat.Load(context.Background()))
	assert.Equal(t, 1, cat.Len())

	// Reload with a different schema; readers see either the old or the new
	// snapshot, never a mix.
	intros.Defs = map[string]TableDef{
		"products": {Columns: []Column{{Name: "id", Type: "int", PrimaryKey: true}}},
		"prices":   {Columns: []Column{{Name: "id", Type: "int", PrimaryKey: true}}},
	}
	require.NoError(t, cat.Load(context.Background()))
	assert.Equal(t, 2, cat.Len())
	assert.True(t, cat.Exists("prices"))
}

func TestCatalogReloadFailureKeepsSnapshot(t *testing.T) {
	intros := &StaticIntrospector{Defs: map[string]TableDef{
		"products": {Columns: []Column{{Name: "id", Type: "int", PrimaryKey: true}}},
	}}
	cat := NewCatalog(intros, nil)
	require.NoError(t, cat.Load(context.Background()))

	bad := NewCatalog(&failingIntrospector{}, nil)
	_ = bad // separate instance sanity: failure cases covered above

	// Swap in a failing column introspection mid-reload.
	prev := cat.Tables()
	cat.intros = &failingIntrospector{}
	err := cat.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, prev, cat.Tables(), "failed reload must not clobber the snapshot")
}

func TestMySQLIntrospector(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	intros := NewMySQLIntrospector(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT table_name FROM information_schema.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("prices").
			AddRow("products"))

	tables, err := intros.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"prices", "products"}, tables)

	mock.ExpectQuery("SELECT column_name, column_type, is_nullable, column_key").
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "column_type", "is_nullable", "column_key"}).
			AddRow("id", "int", "NO", "PRI").
			AddRow("name", "varchar(255)", "YES", ""))

	cols, err := intros.Columns(ctx, "products")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.True(t, cols[0].PrimaryKey)
	assert.True(t, cols[1].Nullable)

	mock.ExpectQuery("SELECT column_name, referenced_table_name, referenced_column_name").
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "referenced_table_name", "referenced_column_name"}).
			AddRow("category_id", "categories", "id"))

	fks, err := intros.ForeignKeys(ctx, "products")
	require.NoError(t, err)
	require.Len(t, fks, 1)
	assert.Equal(t, ForeignKey{Column: "category_id", RefTable: "categories", RefColumn: "id"}, fks[0])

	mock.ExpectQuery("SELECT DISTINCT index_name FROM information_schema.statistics").
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"index_name"}).
			AddRow("PRIMARY").
			AddRow("idx_name"))

	idxs, err := intros.Indexes(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []string{"PRIMARY", "idx_name"}, idxs)

	assert.NoError(t, mock.ExpectationsWereMet())
}
