package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// stubCatalogService captures inputs for the handlers under test and panics
// on everything else.
type stubCatalogService struct {
	createProductInput *catalog.CreateProductInput
	deleteBlockedBy    []string
	checkResult        *catalog.DeletionCheckDTO
}

func (s *stubCatalogService) CreateIngredient(ctx context.Context, input catalog.CreateIngredientInput) (*catalog.IngredientDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*catalog.IngredientDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListIngredients(ctx context.Context, params pagination.Params) (*catalog.IngredientListResult, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) UpdateIngredient(ctx context.Context, id uuid.UUID, input catalog.UpdateIngredientInput) (*catalog.IngredientDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	s.createProductInput = &input
	return &catalog.ProductDTO{
		ID:        uuid.New(),
		Name:      input.Name,
		BasePrice: input.BasePrice,
		Tags:      input.Tags,
		GroupIDs:  input.GroupIDs,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListProducts(ctx context.Context, params pagination.Params) (*catalog.ProductListResult, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if len(s.deleteBlockedBy) > 0 {
		return pkgerrors.New(pkgerrors.CodeResourceInUse, "product is still referenced").
			WithDetails(map[string]any{"dependants": s.deleteBlockedBy})
	}
	return nil
}

func (s *stubCatalogService) CreateGroup(ctx context.Context, input catalog.CreateGroupInput) (*catalog.ProductGroupDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) GetGroup(ctx context.Context, id uuid.UUID) (*catalog.ProductGroupDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListGroups(ctx context.Context, params pagination.Params) (*catalog.GroupListResult, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) UpdateGroup(ctx context.Context, id uuid.UUID, input catalog.UpdateGroupInput) (*catalog.ProductGroupDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubCatalogService) CreateGroupItem(ctx context.Context, input catalog.CreateGroupItemInput) (*catalog.GroupItemDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) GetGroupItem(ctx context.Context, id uuid.UUID) (*catalog.GroupItemDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListGroupItems(ctx context.Context, params pagination.Params) (*catalog.GroupItemListResult, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) UpdateGroupItem(ctx context.Context, id uuid.UUID, input catalog.UpdateGroupItemInput) (*catalog.GroupItemDTO, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) DeleteGroupItem(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubCatalogService) CheckDeletable(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) (*catalog.DeletionCheckDTO, error) {
	if s.checkResult != nil {
		return s.checkResult, nil
	}
	return &catalog.DeletionCheckDTO{Kind: kind, ID: id, Deletable: true, Dependants: []string{}}, nil
}
