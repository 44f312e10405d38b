package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name            string
	Description     *string
	BasePrice       decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Category        *string
	Tags            []string
	GroupIDs        []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	BasePrice       *decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Category        *string
	Tags            *[]string
	GroupIDs        *[]uuid.UUID
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateProductPrices(input.BasePrice, input.DiscountedPrice); err != nil {
		return nil, err
	}
	if err := s.ensureGroupsExist(ctx, input.GroupIDs); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:              uuid.New(),
		Name:            name,
		Description:     input.Description,
		BasePrice:       input.BasePrice,
		DiscountedPrice: input.DiscountedPrice,
		Category:        input.Category,
		Tags:            input.Tags,
		GroupIDs:        dbtypes.UUIDArray(input.GroupIDs),
	}
	if product.GroupIDs == nil {
		product.GroupIDs = dbtypes.UUIDArray{}
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return toProductDTO(created), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "product", id)
	}
	return toProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error) {
	rows, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	page := pagination.BuildPage(rows, params.Limit, func(m models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})
	dtos := make([]ProductDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, *toProductDTO(&page.Items[i]))
	}
	return &ProductListResult{Products: dtos, NextCursor: page.NextCursor}, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "product", id)
	}

	if input.Name != nil {
		name, err := requireName(*input.Name)
		if err != nil {
			return nil, err
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}

	basePrice := product.BasePrice
	if input.BasePrice != nil {
		basePrice = *input.BasePrice
	}
	discounted := product.DiscountedPrice
	if input.DiscountedPrice != nil {
		discounted = input.DiscountedPrice
	}
	if err := validateProductPrices(basePrice, discounted); err != nil {
		return nil, err
	}
	product.BasePrice = basePrice
	product.DiscountedPrice = discounted

	if input.GroupIDs != nil {
		if err := s.ensureGroupsExist(ctx, *input.GroupIDs); err != nil {
			return nil, err
		}
		product.GroupIDs = dbtypes.UUIDArray(*input.GroupIDs)
		if product.GroupIDs == nil {
			product.GroupIDs = dbtypes.UUIDArray{}
		}
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return toProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		return mapLookupErr(err, "product", id)
	}
	if err := s.ensureDeletable(ctx, enums.DeletableKindProduct, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func validateProductPrices(basePrice decimal.Decimal, discounted *decimal.Decimal) error {
	if basePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base_price cannot be negative")
	}
	if discounted != nil && discounted.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discounted_price cannot be negative")
	}
	return nil
}

// ensureGroupsExist rejects edges to groups that are not in the catalog. The
// graph has no database-level integrity, so write paths verify references up
// front and the deletion guard keeps them from dangling afterwards.
func (s *service) ensureGroupsExist(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.repo.FindGroupByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product_group %s does not exist", id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load product_group %s", id))
		}
	}
	return nil
}
