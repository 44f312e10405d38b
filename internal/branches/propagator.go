package branches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/db"
	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
	"github.com/mvillagranc/mesaboard-backend/pkg/metrics"
)

type catalogWalker interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindGroupByID(ctx context.Context, id uuid.UUID) (*models.ProductGroup, error)
	ListGroupItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupItem, error)
	FindIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
}

// Propagator walks the composition graph when a product is switched on at a
// branch. Enabling cascades: the product's groups, their items, nested
// products, and wrapped ingredients all become available. Disabling never
// cascades; switching one product off says nothing about what it contains.
//
// The walk is iterative with an explicit stack and a visited set, so cyclic
// product references terminate and re-running an enable is a no-op.
type Propagator struct {
	repo     *Repository
	catalog  catalogWalker
	dbClient *db.Client
	logg     *logger.Logger
	metrics  *metrics.PropagationMetrics
}

// NewPropagator constructs a branch availability propagator.
func NewPropagator(repo *Repository, catalog catalogWalker, dbClient *db.Client, logg *logger.Logger, m *metrics.PropagationMetrics) (*Propagator, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog walker required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Propagator{repo: repo, catalog: catalog, dbClient: dbClient, logg: logg, metrics: m}, nil
}

// walkResult is everything a cascade run decided to switch on.
type walkResult struct {
	products    []uuid.UUID
	ingredients []uuid.UUID
}

// EnableProduct makes the product available at the branch and cascades
// through its composition graph.
func (p *Propagator) EnableProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	started := time.Now()

	branch, err := p.repo.FindBranchByID(ctx, branchID)
	if err != nil {
		p.metrics.IncRun("error")
		return mapBranchLookupErr(err, branchID)
	}
	if _, err := p.catalog.FindProductByID(ctx, productID); err != nil {
		p.metrics.IncRun("error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load product %s", productID))
	}

	result, err := p.walk(ctx, productID)
	if err != nil {
		p.metrics.IncRun("error")
		p.metrics.ObserveDuration("error", time.Since(started))
		return err
	}

	if err := p.persist(ctx, branch, result); err != nil {
		p.metrics.IncRun("error")
		p.metrics.ObserveDuration("error", time.Since(started))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: persist availability cascade")
	}

	p.metrics.IncRun("ok")
	p.metrics.ObserveDuration("ok", time.Since(started))
	p.logg.Debug(p.logg.WithFields(ctx, map[string]any{
		"branch_id":   branchID.String(),
		"product_id":  productID.String(),
		"products":    len(result.products),
		"ingredients": len(result.ingredients),
	}), "availability cascade applied")
	return nil
}

// walk runs the iterative traversal from the root product. Nodes that have
// vanished from the catalog are skipped and never abort the walk; unexpected
// storage failures are collected and reported together.
func (p *Propagator) walk(ctx context.Context, rootProductID uuid.UUID) (*walkResult, error) {
	var walkErr error

	visitedProducts := map[uuid.UUID]struct{}{}
	seenIngredients := map[uuid.UUID]struct{}{}
	result := &walkResult{}

	stack := []uuid.UUID{rootProductID}
	for len(stack) > 0 {
		productID := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visitedProducts[productID]; ok {
			continue
		}
		visitedProducts[productID] = struct{}{}

		product, err := p.catalog.FindProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				p.metrics.IncSkipped("product")
				continue
			}
			walkErr = multierr.Append(walkErr, fmt.Errorf("load product %s: %w", productID, err))
			continue
		}
		p.metrics.IncVisited("product")
		result.products = append(result.products, product.ID)

		for _, groupID := range product.GroupIDs {
			group, err := p.catalog.FindGroupByID(ctx, groupID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					p.metrics.IncSkipped("group")
					continue
				}
				walkErr = multierr.Append(walkErr, fmt.Errorf("load product_group %s: %w", groupID, err))
				continue
			}

			items, err := p.catalog.ListGroupItemsByIDs(ctx, group.GroupItemIDs)
			if err != nil {
				walkErr = multierr.Append(walkErr, fmt.Errorf("load items of product_group %s: %w", groupID, err))
				continue
			}
			for _, item := range items {
				switch item.ItemType {
				case enums.CatalogItemKindProduct:
					stack = append(stack, item.ItemID)
				case enums.CatalogItemKindIngredient:
					if _, ok := seenIngredients[item.ItemID]; ok {
						continue
					}
					seenIngredients[item.ItemID] = struct{}{}
					if _, err := p.catalog.FindIngredientByID(ctx, item.ItemID); err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							p.metrics.IncSkipped("ingredient")
							continue
						}
						walkErr = multierr.Append(walkErr, fmt.Errorf("load ingredient %s: %w", item.ItemID, err))
						continue
					}
					p.metrics.IncVisited("ingredient")
					result.ingredients = append(result.ingredients, item.ItemID)
				}
			}
		}
	}

	if walkErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, walkErr, "availability walk failed")
	}
	return result, nil
}

// persist applies the walk result in a single transaction: flags flipped on,
// branch enumeration lists extended, nothing removed.
func (p *Propagator) persist(ctx context.Context, branch *models.Branch, result *walkResult) error {
	return p.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := p.repo.WithTx(tx)

		for _, productID := range result.products {
			row := &models.BranchProductAvailability{
				BranchID:  branch.ID,
				ProductID: productID,
				Available: true,
			}
			if err := txRepo.UpsertProductAvailability(ctx, row); err != nil {
				return err
			}
			if !branch.ProductIDs.Contains(productID) {
				branch.ProductIDs = append(branch.ProductIDs, productID)
			}
		}
		for _, ingredientID := range result.ingredients {
			row := &models.BranchIngredientAvailability{
				BranchID:     branch.ID,
				IngredientID: ingredientID,
				Available:    true,
			}
			if err := txRepo.UpsertIngredientAvailability(ctx, row); err != nil {
				return err
			}
			if !branch.IngredientIDs.Contains(ingredientID) {
				branch.IngredientIDs = append(branch.IngredientIDs, ingredientID)
			}
		}

		_, err := txRepo.UpdateBranch(ctx, branch)
		return err
	})
}

// RemoveProduct switches a single product off at the branch. No cascade: the
// product's ingredients and nested products keep whatever state they have.
func (p *Propagator) RemoveProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	return p.SetProductAvailability(ctx, branchID, productID, false)
}

// SetProductAvailability overwrites one product flag without any propagation
// and keeps the branch's enumeration list in step.
func (p *Propagator) SetProductAvailability(ctx context.Context, branchID, productID uuid.UUID, available bool) error {
	branch, err := p.repo.FindBranchByID(ctx, branchID)
	if err != nil {
		return mapBranchLookupErr(err, branchID)
	}

	return p.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := p.repo.WithTx(tx)
		row := &models.BranchProductAvailability{
			BranchID:  branchID,
			ProductID: productID,
			Available: available,
		}
		if err := txRepo.UpsertProductAvailability(ctx, row); err != nil {
			return err
		}
		if available {
			if !branch.ProductIDs.Contains(productID) {
				branch.ProductIDs = append(branch.ProductIDs, productID)
			}
		} else {
			branch.ProductIDs = branch.ProductIDs.Without(productID)
		}
		_, err := txRepo.UpdateBranch(ctx, branch)
		return err
	})
}

// SetIngredientAvailability overwrites one ingredient flag without any
// propagation.
func (p *Propagator) SetIngredientAvailability(ctx context.Context, branchID, ingredientID uuid.UUID, available bool) error {
	branch, err := p.repo.FindBranchByID(ctx, branchID)
	if err != nil {
		return mapBranchLookupErr(err, branchID)
	}

	return p.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := p.repo.WithTx(tx)
		row := &models.BranchIngredientAvailability{
			BranchID:     branchID,
			IngredientID: ingredientID,
			Available:    available,
		}
		if err := txRepo.UpsertIngredientAvailability(ctx, row); err != nil {
			return err
		}
		if available {
			if !branch.IngredientIDs.Contains(ingredientID) {
				branch.IngredientIDs = append(branch.IngredientIDs, ingredientID)
			}
		} else {
			branch.IngredientIDs = branch.IngredientIDs.Without(ingredientID)
		}
		_, err := txRepo.UpdateBranch(ctx, branch)
		return err
	})
}

// IsProductAvailable answers the closed-world lookup: no row means false.
func (p *Propagator) IsProductAvailable(ctx context.Context, branchID, productID uuid.UUID) (bool, error) {
	if _, err := p.repo.FindBranchByID(ctx, branchID); err != nil {
		return false, mapBranchLookupErr(err, branchID)
	}
	row, err := p.repo.GetProductAvailability(ctx, branchID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product availability")
	}
	return row.Available, nil
}

// IsIngredientAvailable answers the closed-world lookup: no row means false.
func (p *Propagator) IsIngredientAvailable(ctx context.Context, branchID, ingredientID uuid.UUID) (bool, error) {
	if _, err := p.repo.FindBranchByID(ctx, branchID); err != nil {
		return false, mapBranchLookupErr(err, branchID)
	}
	row, err := p.repo.GetIngredientAvailability(ctx, branchID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load ingredient availability")
	}
	return row.Available, nil
}

func mapBranchLookupErr(err error, branchID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("branch %s not found", branchID))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: load branch %s", branchID))
}
