package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// IngredientDTO is the API representation of an ingredient.
type IngredientDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductDTO is the API representation of a product.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Tags            []string         `json:"tags"`
	GroupIDs        []uuid.UUID      `json:"group_ids"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// GroupItemDTO is the API representation of a group item.
type GroupItemDTO struct {
	ID            uuid.UUID             `json:"id"`
	ItemID        uuid.UUID             `json:"item_id"`
	ItemType      enums.CatalogItemKind `json:"item_type"`
	OverridePrice *decimal.Decimal      `json:"override_price,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ProductGroupDTO is the API representation of a product group.
type ProductGroupDTO struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Type         enums.CatalogItemKind `json:"type"`
	GroupItemIDs []uuid.UUID           `json:"group_item_ids"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// IngredientListResult is one page of ingredients.
type IngredientListResult struct {
	Ingredients []IngredientDTO `json:"ingredients"`
	NextCursor  string          `json:"next_cursor,omitempty"`
}

// ProductListResult is one page of products.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// GroupListResult is one page of product groups.
type GroupListResult struct {
	Groups     []ProductGroupDTO `json:"groups"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// GroupItemListResult is one page of group items.
type GroupItemListResult struct {
	GroupItems []GroupItemDTO `json:"group_items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// DeletionCheckDTO reports whether a catalog entity can be removed.
type DeletionCheckDTO struct {
	Kind       enums.DeletableKind `json:"kind"`
	ID         uuid.UUID           `json:"id"`
	Deletable  bool                `json:"deletable"`
	Dependants []string            `json:"dependants"`
}

func toIngredientDTO(m *models.Ingredient) *IngredientDTO {
	return &IngredientDTO{
		ID:        m.ID,
		Name:      m.Name,
		BasePrice: m.BasePrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toProductDTO(m *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		BasePrice:       m.BasePrice,
		DiscountedPrice: m.DiscountedPrice,
		Category:        m.Category,
		Tags:            append([]string{}, m.Tags...),
		GroupIDs:        append([]uuid.UUID{}, m.GroupIDs...),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toGroupItemDTO(m *models.GroupItem) *GroupItemDTO {
	return &GroupItemDTO{
		ID:            m.ID,
		ItemID:        m.ItemID,
		ItemType:      m.ItemType,
		OverridePrice: m.OverridePrice,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toGroupDTO(m *models.ProductGroup) *ProductGroupDTO {
	return &ProductGroupDTO{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		GroupItemIDs: append([]uuid.UUID{}, m.GroupItemIDs...),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
