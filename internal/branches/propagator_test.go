package branches

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/pkg/config"
	"github.com/mvillagranc/mesaboard-backend/pkg/db"
	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
)

func setupBranchTestDB(t *testing.T) (*db.Client, *gorm.DB) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: "file::memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	conn := client.DB()
	ddl := []string{
		`CREATE TABLE ingredients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  base_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE products (
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
);`,
		`CREATE TABLE group_items (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  override_price NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE product_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  group_item_ids TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE branches (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT,
  email TEXT,
  address TEXT,
  open INTEGER NOT NULL DEFAULT 0,
  product_ids TEXT NOT NULL DEFAULT '{}',
  ingredient_ids TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE branch_hours (
  id TEXT PRIMARY KEY,
  branch_id TEXT NOT NULL,
  weekday TEXT NOT NULL,
  opens_at TEXT NOT NULL,
  closes_at TEXT NOT NULL
);`,
		`CREATE TABLE branch_product_availabilities (
  branch_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  available INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME,
  PRIMARY KEY (branch_id, product_id)
);`,
		`CREATE TABLE branch_ingredient_availabilities (
  branch_id TEXT NOT NULL,
  ingredient_id TEXT NOT NULL,
  available INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME,
  PRIMARY KEY (branch_id, ingredient_id)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return client, conn
}

func newTestPropagator(t *testing.T) (*Propagator, *Repository, *gorm.DB) {
	t.Helper()

	client, conn := setupBranchTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	propagator, err := NewPropagator(repo, catalog.NewRepository(conn), client, logg, nil)
	require.NoError(t, err)
	return propagator, repo, conn
}

func seedBranch(t *testing.T, conn *gorm.DB, name string) *models.Branch {
	t.Helper()

	branch := &models.Branch{
		ID:            uuid.New(),
		Name:          name,
		ProductIDs:    dbtypes.UUIDArray{},
		IngredientIDs: dbtypes.UUIDArray{},
	}
	require.NoError(t, conn.Create(branch).Error)
	return branch
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, groupIDs ...uuid.UUID) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: decimal.RequireFromString("5.00"),
		GroupIDs:  dbtypes.UUIDArray(groupIDs),
	}
	if product.GroupIDs == nil {
		product.GroupIDs = dbtypes.UUIDArray{}
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func seedIngredient(t *testing.T, conn *gorm.DB, name string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: decimal.RequireFromString("1.00"),
	}
	require.NoError(t, conn.Create(ingredient).Error)
	return ingredient
}

func seedGroupItem(t *testing.T, conn *gorm.DB, itemID uuid.UUID, itemType enums.CatalogItemKind) *models.GroupItem {
	t.Helper()

	item := &models.GroupItem{ID: uuid.New(), ItemID: itemID, ItemType: itemType}
	require.NoError(t, conn.Create(item).Error)
	return item
}

func seedGroup(t *testing.T, conn *gorm.DB, name string, groupType enums.CatalogItemKind, itemIDs ...uuid.UUID) *models.ProductGroup {
	t.Helper()

	group := &models.ProductGroup{
		ID:           uuid.New(),
		Name:         name,
		Type:         groupType,
		GroupItemIDs: dbtypes.UUIDArray(itemIDs),
	}
	require.NoError(t, conn.Create(group).Error)
	return group
}

func setProductGroups(t *testing.T, conn *gorm.DB, product *models.Product, groupIDs ...uuid.UUID) {
	t.Helper()

	product.GroupIDs = dbtypes.UUIDArray(groupIDs)
	require.NoError(t, conn.Save(product).Error)
}

func TestEnableProductCascades(t *testing.T) {
	propagator, repo, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")

	cheese := seedIngredient(t, conn, "Cheese")
	cheeseItem := seedGroupItem(t, conn, cheese.ID, enums.CatalogItemKindIngredient)
	toppings := seedGroup(t, conn, "Toppings", enums.CatalogItemKindIngredient, cheeseItem.ID)

	fries := seedProduct(t, conn, "Fries")
	friesItem := seedGroupItem(t, conn, fries.ID, enums.CatalogItemKindProduct)
	sides := seedGroup(t, conn, "Sides", enums.CatalogItemKindProduct, friesItem.ID)

	burger := seedProduct(t, conn, "Burger", toppings.ID, sides.ID)

	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, burger.ID))

	for _, productID := range []uuid.UUID{burger.ID, fries.ID} {
		available, err := propagator.IsProductAvailable(ctx, branch.ID, productID)
		require.NoError(t, err)
		assert.Truef(t, available, "product %s", productID)
	}
	available, err := propagator.IsIngredientAvailable(ctx, branch.ID, cheese.ID)
	require.NoError(t, err)
	assert.True(t, available)

	// Enumeration lists track the flags.
	reloaded, err := repo.FindBranchByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.ProductIDs.Contains(burger.ID))
	assert.True(t, reloaded.ProductIDs.Contains(fries.ID))
	assert.True(t, reloaded.IngredientIDs.Contains(cheese.ID))
}

func TestEnableProductTerminatesOnCycles(t *testing.T) {
	propagator, _, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")

	// combo -> meals -> combo: a cycle through the composition graph.
	combo := seedProduct(t, conn, "Combo")
	comboItem := seedGroupItem(t, conn, combo.ID, enums.CatalogItemKindProduct)
	meals := seedGroup(t, conn, "Meals", enums.CatalogItemKindProduct, comboItem.ID)
	setProductGroups(t, conn, combo, meals.ID)

	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, combo.ID))

	available, err := propagator.IsProductAvailable(ctx, branch.ID, combo.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestEnableProductIsIdempotent(t *testing.T) {
	propagator, repo, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")
	cheese := seedIngredient(t, conn, "Cheese")
	cheeseItem := seedGroupItem(t, conn, cheese.ID, enums.CatalogItemKindIngredient)
	toppings := seedGroup(t, conn, "Toppings", enums.CatalogItemKindIngredient, cheeseItem.ID)
	burger := seedProduct(t, conn, "Burger", toppings.ID)

	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, burger.ID))
	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, burger.ID))

	reloaded, err := repo.FindBranchByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.ProductIDs, 1)
	assert.Len(t, reloaded.IngredientIDs, 1)

	rows, err := repo.ListProductAvailability(ctx, branch.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestEnableProductSkipsDanglingTargets(t *testing.T) {
	propagator, _, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")

	cheese := seedIngredient(t, conn, "Cheese")
	cheeseItem := seedGroupItem(t, conn, cheese.ID, enums.CatalogItemKindIngredient)
	goneItem := seedGroupItem(t, conn, uuid.New(), enums.CatalogItemKindIngredient)
	goneProductItem := seedGroupItem(t, conn, uuid.New(), enums.CatalogItemKindProduct)
	toppings := seedGroup(t, conn, "Toppings", enums.CatalogItemKindIngredient,
		cheeseItem.ID, goneItem.ID, goneProductItem.ID)

	burger := seedProduct(t, conn, "Burger", toppings.ID, uuid.New())

	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, burger.ID))

	available, err := propagator.IsIngredientAvailable(ctx, branch.ID, cheese.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestRemoveProductDoesNotCascade(t *testing.T) {
	propagator, repo, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")
	cheese := seedIngredient(t, conn, "Cheese")
	cheeseItem := seedGroupItem(t, conn, cheese.ID, enums.CatalogItemKindIngredient)
	toppings := seedGroup(t, conn, "Toppings", enums.CatalogItemKindIngredient, cheeseItem.ID)
	burger := seedProduct(t, conn, "Burger", toppings.ID)

	require.NoError(t, propagator.EnableProduct(ctx, branch.ID, burger.ID))
	require.NoError(t, propagator.RemoveProduct(ctx, branch.ID, burger.ID))

	productAvailable, err := propagator.IsProductAvailable(ctx, branch.ID, burger.ID)
	require.NoError(t, err)
	assert.False(t, productAvailable)

	// The cheese the burger dragged in stays available.
	ingredientAvailable, err := propagator.IsIngredientAvailable(ctx, branch.ID, cheese.ID)
	require.NoError(t, err)
	assert.True(t, ingredientAvailable)

	reloaded, err := repo.FindBranchByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.ProductIDs.Contains(burger.ID))
	assert.True(t, reloaded.IngredientIDs.Contains(cheese.ID))
}

func TestClosedWorldDefaults(t *testing.T) {
	propagator, _, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")

	available, err := propagator.IsProductAvailable(ctx, branch.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, available)

	available, err = propagator.IsIngredientAvailable(ctx, branch.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, available)
}

func TestDirectSettersKeepListsConsistent(t *testing.T) {
	propagator, repo, conn := newTestPropagator(t)
	ctx := context.Background()

	branch := seedBranch(t, conn, "Centro")
	productID := uuid.New()
	ingredientID := uuid.New()

	require.NoError(t, propagator.SetProductAvailability(ctx, branch.ID, productID, true))
	require.NoError(t, propagator.SetIngredientAvailability(ctx, branch.ID, ingredientID, true))

	reloaded, err := repo.FindBranchByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.ProductIDs.Contains(productID))
	assert.True(t, reloaded.IngredientIDs.Contains(ingredientID))

	require.NoError(t, propagator.SetProductAvailability(ctx, branch.ID, productID, false))
	require.NoError(t, propagator.SetIngredientAvailability(ctx, branch.ID, ingredientID, false))

	reloaded, err = repo.FindBranchByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.ProductIDs.Contains(productID))
	assert.False(t, reloaded.IngredientIDs.Contains(ingredientID))

	available, err := propagator.IsProductAvailable(ctx, branch.ID, productID)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestEnableProductUnknownBranchOrProduct(t *testing.T) {
	propagator, _, conn := newTestPropagator(t)
	ctx := context.Background()

	product := seedProduct(t, conn, "Burger")

	err := propagator.EnableProduct(ctx, uuid.New(), product.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	branch := seedBranch(t, conn, "Centro")
	err = propagator.EnableProduct(ctx, branch.ID, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
