package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)
	svc, err := NewService(repo, guard)
	require.NoError(t, err)
	return svc, db
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	typed := pkgerrors.As(err)
	require.NotNilf(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestIngredientCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:      "  Cheese ",
		BasePrice: decimal.RequireFromString("1.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cheese", created.Name)

	fetched, err := svc.GetIngredient(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.BasePrice.Equal(decimal.RequireFromString("1.50")))

	updated, err := svc.UpdateIngredient(ctx, created.ID, UpdateIngredientInput{
		BasePrice: decimalPtr("2.25"),
	})
	require.NoError(t, err)
	assert.True(t, updated.BasePrice.Equal(decimal.RequireFromString("2.25")))
	assert.Equal(t, "Cheese", updated.Name)

	require.NoError(t, svc.DeleteIngredient(ctx, created.ID))
	_, err = svc.GetIngredient(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateIngredientValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateIngredient(ctx, CreateIngredientInput{Name: "   "})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateIngredient(ctx, CreateIngredientInput{
		Name:      "Cheese",
		BasePrice: decimal.RequireFromString("-0.01"),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateProductRejectsMissingGroup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:      "Burger",
		BasePrice: decimal.RequireFromString("9.90"),
		GroupIDs:  []uuid.UUID{uuid.New()},
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateGroupRejectsTypeMismatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	item := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)

	_, err := svc.CreateGroup(ctx, CreateGroupInput{
		Name:         "Sides",
		Type:         enums.CatalogItemKindProduct,
		GroupItemIDs: []uuid.UUID{item.ID},
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	group, err := svc.CreateGroup(ctx, CreateGroupInput{
		Name:         "Toppings",
		Type:         enums.CatalogItemKindIngredient,
		GroupItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)

	// Flipping the type against the existing membership re-runs the check.
	productKind := enums.CatalogItemKindProduct
	_, err = svc.UpdateGroup(ctx, group.ID, UpdateGroupInput{Type: &productKind})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestGroupItemOverridePriceSemantics(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")

	// Zero is a legitimate override, distinct from no override at all.
	free, err := svc.CreateGroupItem(ctx, CreateGroupItemInput{
		ItemID:        cheese.ID,
		ItemType:      enums.CatalogItemKindIngredient,
		OverridePrice: decimalPtr("0.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, free.OverridePrice)
	assert.True(t, free.OverridePrice.IsZero())

	inherit, err := svc.CreateGroupItem(ctx, CreateGroupItemInput{
		ItemID:   cheese.ID,
		ItemType: enums.CatalogItemKindIngredient,
	})
	require.NoError(t, err)
	assert.Nil(t, inherit.OverridePrice)

	_, err = svc.CreateGroupItem(ctx, CreateGroupItemInput{
		ItemID:        cheese.ID,
		ItemType:      enums.CatalogItemKindIngredient,
		OverridePrice: decimalPtr("-1.00"),
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	cleared, err := svc.UpdateGroupItem(ctx, free.ID, UpdateGroupItemInput{ClearOverridePrice: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.OverridePrice)
}

func TestCreateGroupItemRejectsMissingLeaf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateGroupItem(ctx, CreateGroupItemInput{
		ItemID:   uuid.New(),
		ItemType: enums.CatalogItemKindIngredient,
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateGroupItem(ctx, CreateGroupItemInput{
		ItemID:   uuid.New(),
		ItemType: enums.CatalogItemKind("combo"),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteBlockedCarriesDependants(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	item := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)
	group := newTestGroup(t, db, "Toppings", enums.CatalogItemKindIngredient, item.ID)
	newTestProduct(t, db, "Burger", "9.90", group.ID)

	err := svc.DeleteIngredient(ctx, cheese.ID)
	requireCode(t, err, pkgerrors.CodeResourceInUse)

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	dependants, ok := details["dependants"].([]string)
	require.True(t, ok)
	assert.Len(t, dependants, 3)
}

func TestCheckDeletable(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	check, err := svc.CheckDeletable(ctx, enums.DeletableKindIngredient, cheese.ID)
	require.NoError(t, err)
	assert.True(t, check.Deletable)
	assert.Empty(t, check.Dependants)

	item := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)
	check, err = svc.CheckDeletable(ctx, enums.DeletableKindIngredient, cheese.ID)
	require.NoError(t, err)
	assert.False(t, check.Deletable)
	assert.Equal(t, []string{groupItemLabel(*item)}, check.Dependants)
}

func TestListProductsPagination(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		newTestProduct(t, db, "Dish", "5.00")
	}

	first, err := svc.ListProducts(ctx, pagination.Params{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, first.Products, 3)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.ListProducts(ctx, pagination.Params{Limit: 3, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Len(t, second.Products, 2)
	assert.Empty(t, second.NextCursor)
}

func TestDeleteMissingEntityIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	requireCode(t, svc.DeleteIngredient(ctx, uuid.New()), pkgerrors.CodeNotFound)
	requireCode(t, svc.DeleteProduct(ctx, uuid.New()), pkgerrors.CodeNotFound)
	requireCode(t, svc.DeleteGroup(ctx, uuid.New()), pkgerrors.CodeNotFound)
	requireCode(t, svc.DeleteGroupItem(ctx, uuid.New()), pkgerrors.CodeNotFound)
}
