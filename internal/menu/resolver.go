package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
)

type catalogSource interface {
	FindGroupByID(ctx context.Context, id uuid.UUID) (*models.ProductGroup, error)
	ListGroupItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupItem, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
}

// ResolvedItem is one flattened entry of a resolved group. Price carries the
// effective value after override resolution: a non-nil override on the group
// item wins outright, zero included, otherwise the leaf's base price applies.
type ResolvedItem struct {
	GroupItemID     uuid.UUID             `json:"group_item_id"`
	ItemID          uuid.UUID             `json:"item_id"`
	ItemType        enums.CatalogItemKind `json:"item_type"`
	Name            string                `json:"name"`
	Price           decimal.Decimal       `json:"price"`
	PriceOverridden bool                  `json:"price_overridden"`
}

// ResolvedGroup is the flattened, price-resolved view of a product group.
type ResolvedGroup struct {
	GroupID uuid.UUID             `json:"group_id"`
	Name    string                `json:"name"`
	Type    enums.CatalogItemKind `json:"type"`
	Items   []ResolvedItem        `json:"items"`
}

// Resolver flattens product groups for menu display.
type Resolver struct {
	source catalogSource
}

// NewResolver constructs a composition resolver over the catalog.
func NewResolver(source catalogSource) (*Resolver, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &Resolver{source: source}, nil
}

// Resolve flattens the group's items in list order. Entries whose group item
// or wrapped leaf no longer exists are dropped from the output; the graph has
// no referential integrity and a stale edge must not break menu rendering.
func (r *Resolver) Resolve(ctx context.Context, groupID uuid.UUID) (*ResolvedGroup, error) {
	group, err := r.source.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product_group %s not found", groupID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load product_group %s", groupID))
	}

	items, err := r.source.ListGroupItemsByIDs(ctx, group.GroupItemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load group items")
	}

	resolved := &ResolvedGroup{
		GroupID: group.ID,
		Name:    group.Name,
		Type:    group.Type,
		Items:   make([]ResolvedItem, 0, len(items)),
	}
	for _, item := range items {
		name, basePrice, err := r.lookupLeaf(ctx, item.ItemID, item.ItemType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("db: load %s %s", item.ItemType, item.ItemID),
			)
		}

		entry := ResolvedItem{
			GroupItemID: item.ID,
			ItemID:      item.ItemID,
			ItemType:    item.ItemType,
			Name:        name,
			Price:       basePrice,
		}
		if item.OverridePrice != nil {
			entry.Price = *item.OverridePrice
			entry.PriceOverridden = true
		}
		resolved.Items = append(resolved.Items, entry)
	}
	return resolved, nil
}

func (r *Resolver) lookupLeaf(ctx context.Context, itemID uuid.UUID, itemType enums.CatalogItemKind) (string, decimal.Decimal, error) {
	switch itemType {
	case enums.CatalogItemKindProduct:
		product, err := r.source.FindProductByID(ctx, itemID)
		if err != nil {
			return "", decimal.Decimal{}, err
		}
		return product.Name, product.BasePrice, nil
	case enums.CatalogItemKindIngredient:
		ingredient, err := r.source.FindIngredientByID(ctx, itemID)
		if err != nil {
			return "", decimal.Decimal{}, err
		}
		return ingredient.Name, ingredient.BasePrice, nil
	default:
		// An unknown kind on a stored row is treated like a dangling edge.
		return "", decimal.Decimal{}, gorm.ErrRecordNotFound
	}
}
