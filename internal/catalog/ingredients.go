package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// CreateIngredientInput holds the validated payload to create an ingredient.
type CreateIngredientInput struct {
	Name      string
	BasePrice decimal.Decimal
}

// UpdateIngredientInput holds optional mutation values for an ingredient.
type UpdateIngredientInput struct {
	Name      *string
	BasePrice *decimal.Decimal
}

func (s *service) CreateIngredient(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error) {
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price cannot be negative")
	}

	ingredient := &models.Ingredient{
		ID:        uuid.New(),
		Name:      name,
		BasePrice: input.BasePrice,
	}
	created, err := s.repo.CreateIngredient(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert ingredient")
	}
	return toIngredientDTO(created), nil
}

func (s *service) GetIngredient(ctx context.Context, id uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.repo.FindIngredientByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "ingredient", id)
	}
	return toIngredientDTO(ingredient), nil
}

func (s *service) ListIngredients(ctx context.Context, params pagination.Params) (*IngredientListResult, error) {
	rows, err := s.repo.ListIngredients(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list ingredients")
	}
	page := pagination.BuildPage(rows, params.Limit, func(m models.Ingredient) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})
	dtos := make([]IngredientDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, *toIngredientDTO(&page.Items[i]))
	}
	return &IngredientListResult{Ingredients: dtos, NextCursor: page.NextCursor}, nil
}

func (s *service) UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error) {
	ingredient, err := s.repo.FindIngredientByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "ingredient", id)
	}

	if input.Name != nil {
		name, err := requireName(*input.Name)
		if err != nil {
			return nil, err
		}
		ingredient.Name = name
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price cannot be negative")
		}
		ingredient.BasePrice = *input.BasePrice
	}

	updated, err := s.repo.UpdateIngredient(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update ingredient")
	}
	return toIngredientDTO(updated), nil
}

func (s *service) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindIngredientByID(ctx, id); err != nil {
		return mapLookupErr(err, "ingredient", id)
	}
	if err := s.ensureDeletable(ctx, enums.DeletableKindIngredient, id); err != nil {
		return err
	}
	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete ingredient")
	}
	return nil
}
