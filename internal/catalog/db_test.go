package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ingredients := `
CREATE TABLE IF NOT EXISTS ingredients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  base_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  base_price NUMERIC NOT NULL,
  discounted_price NUMERIC,
  category TEXT,
  tags TEXT,
  group_ids TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`
	groupItems := `
CREATE TABLE IF NOT EXISTS group_items (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  override_price NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	productGroups := `
CREATE TABLE IF NOT EXISTS product_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  group_item_ids TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ingredients).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(groupItems).Error)
	require.NoError(t, db.Exec(productGroups).Error)
	return db
}

func newTestIngredient(t *testing.T, db *gorm.DB, name string, price string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func newTestProduct(t *testing.T, db *gorm.DB, name string, price string, groupIDs ...uuid.UUID) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: decimal.RequireFromString(price),
		GroupIDs:  dbtypes.UUIDArray(groupIDs),
	}
	if product.GroupIDs == nil {
		product.GroupIDs = dbtypes.UUIDArray{}
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newTestGroupItem(t *testing.T, db *gorm.DB, itemID uuid.UUID, itemType enums.CatalogItemKind, override *decimal.Decimal) *models.GroupItem {
	t.Helper()

	item := &models.GroupItem{
		ID:            uuid.New(),
		ItemID:        itemID,
		ItemType:      itemType,
		OverridePrice: override,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newTestGroup(t *testing.T, db *gorm.DB, name string, groupType enums.CatalogItemKind, itemIDs ...uuid.UUID) *models.ProductGroup {
	t.Helper()

	group := &models.ProductGroup{
		ID:           uuid.New(),
		Name:         name,
		Type:         groupType,
		GroupItemIDs: dbtypes.UUIDArray(itemIDs),
	}
	if group.GroupItemIDs == nil {
		group.GroupItemIDs = dbtypes.UUIDArray{}
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
