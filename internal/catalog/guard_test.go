package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

func TestGuardFindDependantsIngredient(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	cheeseItem := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)
	toppings := newTestGroup(t, db, "Toppings", enums.CatalogItemKindIngredient, cheeseItem.ID)
	burger := newTestProduct(t, db, "Burger", "9.90", toppings.ID)

	labels, err := guard.FindDependants(ctx, enums.DeletableKindIngredient, cheese.ID)
	require.NoError(t, err)

	assert.Len(t, labels, 3)
	assert.Contains(t, labels, groupItemLabel(*cheeseItem))
	assert.Contains(t, labels, groupLabel(*toppings))
	assert.Contains(t, labels, productLabel(*burger))
}

func TestGuardFindDependantsDeduplicates(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	itemA := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)
	itemB := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, decimalPtr("0.00"))
	groupA := newTestGroup(t, db, "Toppings", enums.CatalogItemKindIngredient, itemA.ID, itemB.ID)
	groupB := newTestGroup(t, db, "Extras", enums.CatalogItemKindIngredient, itemA.ID)
	// Burger reaches the ingredient through both groups but must appear once.
	burger := newTestProduct(t, db, "Burger", "9.90", groupA.ID, groupB.ID)

	labels, err := guard.FindDependants(ctx, enums.DeletableKindIngredient, cheese.ID)
	require.NoError(t, err)

	assert.Len(t, labels, 5)
	counts := map[string]int{}
	for _, label := range labels {
		counts[label]++
	}
	for label, n := range counts {
		assert.Equalf(t, 1, n, "label %q repeated", label)
	}
	assert.Contains(t, labels, productLabel(*burger))

	// Two runs over the same graph yield the same ordering.
	again, err := guard.FindDependants(ctx, enums.DeletableKindIngredient, cheese.ID)
	require.NoError(t, err)
	assert.Equal(t, labels, again)
}

func TestGuardExactMembership(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	// Two group items whose ids differ only in the final character. Referencing
	// one must never block deletion of the other.
	base := "7b1f0e6a-90d4-4a11-8f5c-0aa93cde210"
	itemUsed := &models.GroupItem{
		ID:       uuid.MustParse(base + "1"),
		ItemID:   uuid.New(),
		ItemType: enums.CatalogItemKindIngredient,
	}
	itemFree := &models.GroupItem{
		ID:       uuid.MustParse(base + "2"),
		ItemID:   uuid.New(),
		ItemType: enums.CatalogItemKindIngredient,
	}
	require.NoError(t, db.Create(itemUsed).Error)
	require.NoError(t, db.Create(itemFree).Error)

	newTestGroup(t, db, "Toppings", enums.CatalogItemKindIngredient, itemUsed.ID)

	blocked, err := guard.FindDependants(ctx, enums.DeletableKindGroupItem, itemUsed.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, blocked)

	free, err := guard.FindDependants(ctx, enums.DeletableKindGroupItem, itemFree.ID)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestGuardGroupBlockedByProduct(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	group := newTestGroup(t, db, "Sides", enums.CatalogItemKindProduct)
	combo := newTestProduct(t, db, "Combo", "14.00", group.ID)

	labels, err := guard.FindDependants(ctx, enums.DeletableKindProductGroup, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{productLabel(*combo)}, labels)

	deletable, blockers, err := guard.CanDelete(ctx, enums.DeletableKindProductGroup, group.ID)
	require.NoError(t, err)
	assert.False(t, deletable)
	assert.Len(t, blockers, 1)
}

func TestGuardProductAsLeaf(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	fries := newTestProduct(t, db, "Fries", "3.50")
	friesItem := newTestGroupItem(t, db, fries.ID, enums.CatalogItemKindProduct, nil)
	sides := newTestGroup(t, db, "Sides", enums.CatalogItemKindProduct, friesItem.ID)
	combo := newTestProduct(t, db, "Combo", "14.00", sides.ID)

	labels, err := guard.FindDependants(ctx, enums.DeletableKindProduct, fries.ID)
	require.NoError(t, err)
	assert.Contains(t, labels, groupItemLabel(*friesItem))
	assert.Contains(t, labels, groupLabel(*sides))
	assert.Contains(t, labels, productLabel(*combo))
}

func TestGuardUnknownKind(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	_, err = guard.FindDependants(context.Background(), enums.DeletableKind("menu"), uuid.New())
	require.Error(t, err)
}

func TestGuardDeletionOrder(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)
	svc, err := NewService(repo, guard)
	require.NoError(t, err)

	ctx := context.Background()

	cheese := newTestIngredient(t, db, "Cheese", "1.50")
	cheeseItem := newTestGroupItem(t, db, cheese.ID, enums.CatalogItemKindIngredient, nil)
	toppings := newTestGroup(t, db, "Toppings", enums.CatalogItemKindIngredient, cheeseItem.ID)
	burger := newTestProduct(t, db, "Burger", "9.90", toppings.ID)

	// Bottom-up deletes are blocked while anything above still references.
	require.Error(t, svc.DeleteIngredient(ctx, cheese.ID))
	require.Error(t, svc.DeleteGroupItem(ctx, cheeseItem.ID))
	require.Error(t, svc.DeleteGroup(ctx, toppings.ID))

	// Top-down order succeeds at every step.
	steps := []struct {
		name string
		del  func() error
	}{
		{name: "product", del: func() error { return svc.DeleteProduct(ctx, burger.ID) }},
		{name: "group", del: func() error { return svc.DeleteGroup(ctx, toppings.ID) }},
		{name: "group item", del: func() error { return svc.DeleteGroupItem(ctx, cheeseItem.ID) }},
		{name: "ingredient", del: func() error { return svc.DeleteIngredient(ctx, cheese.ID) }},
	}
	for _, step := range steps {
		require.NoErrorf(t, step.del(), "delete %s", step.name)
	}
}

func TestGuardScalesPastSingleDigitGraphs(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	guard, err := NewGuard(repo)
	require.NoError(t, err)

	ctx := context.Background()

	shared := newTestIngredient(t, db, "Salt", "0.10")
	for i := 0; i < 12; i++ {
		item := newTestGroupItem(t, db, shared.ID, enums.CatalogItemKindIngredient, nil)
		group := newTestGroup(t, db, fmt.Sprintf("Group %d", i), enums.CatalogItemKindIngredient, item.ID)
		newTestProduct(t, db, fmt.Sprintf("Dish %d", i), "5.00", group.ID)
	}

	labels, err := guard.FindDependants(ctx, enums.DeletableKindIngredient, shared.ID)
	require.NoError(t, err)
	assert.Len(t, labels, 36)
}
