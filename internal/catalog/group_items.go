package catalog

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
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// CreateGroupItemInput holds the validated payload to create a group item.
// A nil OverridePrice inherits the wrapped item's base price; a zero value
// makes the item free inside the group.
type CreateGroupItemInput struct {
	ItemID        uuid.UUID
	ItemType      enums.CatalogItemKind
	OverridePrice *decimal.Decimal
}

// UpdateGroupItemInput holds optional mutation values for a group item.
// ClearOverridePrice removes the override so the base price applies again.
type UpdateGroupItemInput struct {
	ItemID             *uuid.UUID
	ItemType           *enums.CatalogItemKind
	OverridePrice      *decimal.Decimal
	ClearOverridePrice bool
}

func (s *service) CreateGroupItem(ctx context.Context, input CreateGroupItemInput) (*GroupItemDTO, error) {
	if !input.ItemType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", input.ItemType))
	}
	if input.OverridePrice != nil && input.OverridePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "override_price cannot be negative")
	}
	if err := s.ensureLeafExists(ctx, input.ItemID, input.ItemType); err != nil {
		return nil, err
	}

	item := &models.GroupItem{
		ID:            uuid.New(),
		ItemID:        input.ItemID,
		ItemType:      input.ItemType,
		OverridePrice: input.OverridePrice,
	}
	created, err := s.repo.CreateGroupItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert group_item")
	}
	return toGroupItemDTO(created), nil
}

func (s *service) GetGroupItem(ctx context.Context, id uuid.UUID) (*GroupItemDTO, error) {
	item, err := s.repo.FindGroupItemByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "group_item", id)
	}
	return toGroupItemDTO(item), nil
}

func (s *service) ListGroupItems(ctx context.Context, params pagination.Params) (*GroupItemListResult, error) {
	rows, err := s.repo.ListGroupItems(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list group_items")
	}
	page := pagination.BuildPage(rows, params.Limit, func(m models.GroupItem) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})
	dtos := make([]GroupItemDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, *toGroupItemDTO(&page.Items[i]))
	}
	return &GroupItemListResult{GroupItems: dtos, NextCursor: page.NextCursor}, nil
}

func (s *service) UpdateGroupItem(ctx context.Context, id uuid.UUID, input UpdateGroupItemInput) (*GroupItemDTO, error) {
	item, err := s.repo.FindGroupItemByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "group_item", id)
	}

	itemID := item.ItemID
	itemType := item.ItemType
	if input.ItemID != nil {
		itemID = *input.ItemID
	}
	if input.ItemType != nil {
		if !input.ItemType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", *input.ItemType))
		}
		itemType = *input.ItemType
	}
	if input.ItemID != nil || input.ItemType != nil {
		if err := s.ensureLeafExists(ctx, itemID, itemType); err != nil {
			return nil, err
		}
	}
	item.ItemID = itemID
	item.ItemType = itemType

	if input.ClearOverridePrice {
		item.OverridePrice = nil
	} else if input.OverridePrice != nil {
		if input.OverridePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "override_price cannot be negative")
		}
		item.OverridePrice = input.OverridePrice
	}

	updated, err := s.repo.UpdateGroupItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update group_item")
	}
	return toGroupItemDTO(updated), nil
}

func (s *service) DeleteGroupItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindGroupItemByID(ctx, id); err != nil {
		return mapLookupErr(err, "group_item", id)
	}
	if err := s.ensureDeletable(ctx, enums.DeletableKindGroupItem, id); err != nil {
		return err
	}
	if err := s.repo.DeleteGroupItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete group_item")
	}
	return nil
}

// ensureLeafExists verifies the wrapped product or ingredient is present.
func (s *service) ensureLeafExists(ctx context.Context, itemID uuid.UUID, itemType enums.CatalogItemKind) error {
	var err error
	switch itemType {
	case enums.CatalogItemKindProduct:
		_, err = s.repo.FindProductByID(ctx, itemID)
	case enums.CatalogItemKindIngredient:
		_, err = s.repo.FindIngredientByID(ctx, itemID)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item type %q", itemType))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s %s does not exist", itemType, itemID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load %s %s", itemType, itemID))
	}
	return nil
}
