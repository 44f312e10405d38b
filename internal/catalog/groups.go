package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// CreateGroupInput holds the validated payload to create a product group.
type CreateGroupInput struct {
	Name         string
	Type         enums.CatalogItemKind
	GroupItemIDs []uuid.UUID
}

// UpdateGroupInput holds optional mutation values for a product group.
type UpdateGroupInput struct {
	Name         *string
	Type         *enums.CatalogItemKind
	GroupItemIDs *[]uuid.UUID
}

func (s *service) CreateGroup(ctx context.Context, input CreateGroupInput) (*ProductGroupDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown group type %q", input.Type))
	}
	if err := s.ensureItemsMatchType(ctx, input.GroupItemIDs, input.Type); err != nil {
		return nil, err
	}

	group := &models.ProductGroup{
		ID:           uuid.New(),
		Name:         name,
		Type:         input.Type,
		GroupItemIDs: dbtypes.UUIDArray(input.GroupItemIDs),
	}
	if group.GroupItemIDs == nil {
		group.GroupItemIDs = dbtypes.UUIDArray{}
	}

	created, err := s.repo.CreateGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product_group")
	}
	return toGroupDTO(created), nil
}

func (s *service) GetGroup(ctx context.Context, id uuid.UUID) (*ProductGroupDTO, error) {
	group, err := s.repo.FindGroupByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "product_group", id)
	}
	return toGroupDTO(group), nil
}

func (s *service) ListGroups(ctx context.Context, params pagination.Params) (*GroupListResult, error) {
	rows, err := s.repo.ListGroups(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product_groups")
	}
	page := pagination.BuildPage(rows, params.Limit, func(m models.ProductGroup) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})
	dtos := make([]ProductGroupDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, *toGroupDTO(&page.Items[i]))
	}
	return &GroupListResult{Groups: dtos, NextCursor: page.NextCursor}, nil
}

func (s *service) UpdateGroup(ctx context.Context, id uuid.UUID, input UpdateGroupInput) (*ProductGroupDTO, error) {
	group, err := s.repo.FindGroupByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "product_group", id)
	}

	if input.Name != nil {
		name, err := requireName(*input.Name)
		if err != nil {
			return nil, err
		}
		group.Name = name
	}

	groupType := group.Type
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown group type %q", *input.Type))
		}
		groupType = *input.Type
	}

	itemIDs := []uuid.UUID(group.GroupItemIDs)
	if input.GroupItemIDs != nil {
		itemIDs = *input.GroupItemIDs
	}

	// A type or membership change re-checks the whole list, not just the delta.
	if input.Type != nil || input.GroupItemIDs != nil {
		if err := s.ensureItemsMatchType(ctx, itemIDs, groupType); err != nil {
			return nil, err
		}
	}
	group.Type = groupType
	group.GroupItemIDs = dbtypes.UUIDArray(itemIDs)
	if group.GroupItemIDs == nil {
		group.GroupItemIDs = dbtypes.UUIDArray{}
	}

	updated, err := s.repo.UpdateGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product_group")
	}
	return toGroupDTO(updated), nil
}

func (s *service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindGroupByID(ctx, id); err != nil {
		return mapLookupErr(err, "product_group", id)
	}
	if err := s.ensureDeletable(ctx, enums.DeletableKindProductGroup, id); err != nil {
		return err
	}
	if err := s.repo.DeleteGroup(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product_group")
	}
	return nil
}

// ensureItemsMatchType verifies every listed group item exists and wraps the
// same kind of leaf the group declares.
func (s *service) ensureItemsMatchType(ctx context.Context, ids []uuid.UUID, groupType enums.CatalogItemKind) error {
	if len(ids) == 0 {
		return nil
	}
	items, err := s.repo.ListGroupItemsByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load group items")
	}

	found := make(map[uuid.UUID]models.GroupItem, len(items))
	for _, item := range items {
		found[item.ID] = item
	}
	for _, id := range ids {
		item, ok := found[id]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("group_item %s does not exist", id))
		}
		if item.ItemType != groupType {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("group_item %s wraps a %s but the group type is %s", id, item.ItemType, groupType),
			)
		}
	}
	return nil
}
