// Package testutil provides shared test fixtures for GoPlanner packages.
package testutil

import (
	"context"
	"testing"

	"github.com/dbsmedya/goplanner/internal/schema"
)

// id returns an int primary-key column.
func id() schema.Column {
	return schema.Column{Name: "id", Type: "int", PrimaryKey: true}
}

func col(name, typ string) schema.Column {
	return schema.Column{Name: name, Type: typ, Nullable: true}
}

func fk(column, refTable string) schema.ForeignKey {
	return schema.ForeignKey{Column: column, RefTable: refTable, RefColumn: "id"}
}

// QuickCommerceDefs returns a static definition of the core quick-commerce
// tables used across selector, planner, and compiler tests.
func QuickCommerceDefs() map[string]schema.TableDef {
	return map[string]schema.TableDef{
		"products": {
			Columns: []schema.Column{
				id(), col("name", "varchar(255)"), col("description", "text"),
				col("category_id", "int"), col("subcategory_id", "int"), col("brand_id", "int"),
				col("is_active", "tinyint(1)"), col("created_at", "datetime"),
			},
			ForeignKeys: []schema.ForeignKey{fk("category_id", "categories"), fk("subcategory_id", "subcategories"), fk("brand_id", "brands")},
			Indexes:     []string{"PRIMARY", "idx_products_name"},
		},
		"categories": {
			Columns: []schema.Column{id(), col("name", "varchar(255)")},
			Indexes: []string{"PRIMARY"},
		},
		"subcategories": {
			Columns:     []schema.Column{id(), col("name", "varchar(255)"), col("category_id", "int")},
			ForeignKeys: []schema.ForeignKey{fk("category_id", "categories")},
			Indexes:     []string{"PRIMARY"},
		},
		"brands": {
			Columns: []schema.Column{id(), col("name", "varchar(255)")},
			Indexes: []string{"PRIMARY"},
		},
		"platforms": {
			Columns: []schema.Column{id(), col("name", "varchar(100)")},
			Indexes: []string{"PRIMARY"},
		},
		"platform_products": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("platform_id", "int")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products"), fk("platform_id", "platforms")},
			Indexes:     []string{"PRIMARY", "idx_pp_product"},
		},
		"prices": {
			Columns: []schema.Column{
				id(), col("platform_product_id", "int"), col("regular_price", "decimal(10,2)"),
				col("sale_price", "decimal(10,2)"), col("discount_percentage", "decimal(5,2)"),
				col("is_active", "tinyint(1)"), col("created_at", "datetime"),
			},
			ForeignKeys: []schema.ForeignKey{fk("platform_product_id", "platform_products")},
			Indexes:     []string{"PRIMARY", "idx_prices_sale"},
		},
		"price_history": {
			Columns:     []schema.Column{id(), col("price_id", "int"), col("recorded_at", "datetime")},
			ForeignKeys: []schema.ForeignKey{fk("price_id", "prices")},
			Indexes:     []string{"PRIMARY"},
		},
		"discounts": {
			Columns: []schema.Column{
				id(), col("platform_id", "int"), col("discount_type", "varchar(50)"),
				col("discount_value", "decimal(10,2)"), col("discount_percentage", "decimal(5,2)"),
				col("is_active", "tinyint(1)"),
			},
			ForeignKeys: []schema.ForeignKey{fk("platform_id", "platforms")},
			Indexes:     []string{"PRIMARY"},
		},
		"product_discounts": {
			Columns:     []schema.Column{id(), col("discount_id", "int"), col("platform_product_id", "int")},
			ForeignKeys: []schema.ForeignKey{fk("discount_id", "discounts"), fk("platform_product_id", "platform_products")},
			Indexes:     []string{"PRIMARY"},
		},
		"offers": {
			Columns:     []schema.Column{id(), col("platform_id", "int"), col("is_active", "tinyint(1)")},
			ForeignKeys: []schema.ForeignKey{fk("platform_id", "platforms")},
			Indexes:     []string{"PRIMARY"},
		},
		"offer_products": {
			Columns:     []schema.Column{id(), col("offer_id", "int"), col("platform_product_id", "int")},
			ForeignKeys: []schema.ForeignKey{fk("offer_id", "offers"), fk("platform_product_id", "platform_products")},
			Indexes:     []string{"PRIMARY"},
		},
		"inventory": {
			Columns:     []schema.Column{id(), col("platform_product_id", "int"), col("quantity_available", "int"), col("last_updated", "datetime")},
			ForeignKeys: []schema.ForeignKey{fk("platform_product_id", "platform_products")},
			Indexes:     []string{"PRIMARY"},
		},
		"popular_products": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("view_count", "int"), col("search_count", "int"), col("order_count", "int"), col("date", "date")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products")},
			Indexes:     []string{"PRIMARY"},
		},
		"product_views": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("viewed_at", "datetime")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products")},
			Indexes:     []string{"PRIMARY"},
		},
		"reviews": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("rating", "int")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products")},
			Indexes:     []string{"PRIMARY"},
		},
		"users": {
			Columns: []schema.Column{id(), col("email", "varchar(255)")},
			Indexes: []string{"PRIMARY"},
		},
		"orders": {
			Columns:     []schema.Column{id(), col("user_id", "int"), col("created_at", "datetime")},
			ForeignKeys: []schema.ForeignKey{fk("user_id", "users")},
			Indexes:     []string{"PRIMARY"},
		},
		"order_items": {
			Columns:     []schema.Column{id(), col("order_id", "int"), col("quantity", "int")},
			ForeignKeys: []schema.ForeignKey{fk("order_id", "orders")},
			Indexes:     []string{"PRIMARY"},
		},
		"nutritional_info": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("calories", "int"), col("protein", "decimal(5,2)")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products")},
			Indexes:     []string{"PRIMARY"},
		},
		"product_attribute_values": {
			Columns:     []schema.Column{id(), col("product_id", "int"), col("value", "varchar(255)")},
			ForeignKeys: []schema.ForeignKey{fk("product_id", "products")},
			Indexes:     []string{"PRIMARY"},
		},
		"search_queries": {
			Columns:     []schema.Column{id(), col("user_id", "int"), col("query_text", "varchar(500)")},
			ForeignKeys: []schema.ForeignKey{fk("user_id", "users")},
			Indexes:     []string{"PRIMARY"},
		},
	}
}

// QuickCommerceCatalog builds and loads a catalog over QuickCommerceDefs.
func QuickCommerceCatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat := schema.NewCatalog(&schema.StaticIntrospector{Defs: QuickCommerceDefs()}, nil)
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("failed to load fixture catalog: %v", err)
	}
	return cat
}
