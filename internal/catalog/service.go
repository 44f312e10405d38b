package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// Service exposes catalog management: the four entity CRUD surfaces plus the
// pre-delete dependency check.
type Service interface {
	CreateIngredient(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*IngredientDTO, error)
	ListIngredients(ctx context.Context, params pagination.Params) (*IngredientListResult, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, params pagination.Params) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateGroup(ctx context.Context, input CreateGroupInput) (*ProductGroupDTO, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*ProductGroupDTO, error)
	ListGroups(ctx context.Context, params pagination.Params) (*GroupListResult, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, input UpdateGroupInput) (*ProductGroupDTO, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	CreateGroupItem(ctx context.Context, input CreateGroupItemInput) (*GroupItemDTO, error)
	GetGroupItem(ctx context.Context, id uuid.UUID) (*GroupItemDTO, error)
	ListGroupItems(ctx context.Context, params pagination.Params) (*GroupItemListResult, error)
	UpdateGroupItem(ctx context.Context, id uuid.UUID, input UpdateGroupItemInput) (*GroupItemDTO, error)
	DeleteGroupItem(ctx context.Context, id uuid.UUID) error

	CheckDeletable(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) (*DeletionCheckDTO, error)
}

type service struct {
	repo  *Repository
	guard *Guard
}

// NewService constructs the catalog service.
func NewService(repo *Repository, guard *Guard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("dependency guard required")
	}
	return &service{repo: repo, guard: guard}, nil
}

// CheckDeletable runs the dependency guard without deleting anything.
func (s *service) CheckDeletable(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) (*DeletionCheckDTO, error) {
	deletable, labels, err := s.guard.CanDelete(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}
	return &DeletionCheckDTO{
		Kind:       kind,
		ID:         id,
		Deletable:  deletable,
		Dependants: labels,
	}, nil
}

// ensureDeletable turns a non-empty dependant list into a ResourceInUse error.
func (s *service) ensureDeletable(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) error {
	deletable, labels, err := s.guard.CanDelete(ctx, kind, id)
	if err != nil {
		return err
	}
	if deletable {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeResourceInUse,
		fmt.Sprintf("%s %s is still referenced", kind, id),
	).WithDetails(map[string]any{"dependants": labels})
}

func mapLookupErr(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s %s not found", entity, id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load %s %s", entity, id))
}

func requireName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return trimmed, nil
}
