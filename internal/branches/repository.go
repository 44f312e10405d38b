package branches

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// Repository handles branch rows, their weekly hours, and the per-branch
// availability tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *Repository) UpdateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	if err := r.db.WithContext(ctx).Omit("Hours").Save(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *Repository) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("branch_id = ?", id).Delete(&models.BranchHours{}).Error; err != nil {
		return err
	}
	if err := tx.Where("branch_id = ?", id).Delete(&models.BranchProductAvailability{}).Error; err != nil {
		return err
	}
	if err := tx.Where("branch_id = ?", id).Delete(&models.BranchIngredientAvailability{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Branch{}).Error
}

func (r *Repository) FindBranchByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Preload("Hours").
		First(&branch, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *Repository) ListBranches(ctx context.Context, params pagination.Params) ([]models.Branch, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	qb := r.db.WithContext(ctx).
		Preload("Hours").
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Branch
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceHours swaps the branch's weekly windows wholesale.
func (r *Repository) ReplaceHours(ctx context.Context, branchID uuid.UUID, hours []models.BranchHours) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("branch_id = ?", branchID).Delete(&models.BranchHours{}).Error; err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}
	return tx.Create(&hours).Error
}

// UpsertProductAvailability writes the (branch, product) flag, inserting the
// row when it does not exist yet.
func (r *Repository) UpsertProductAvailability(ctx context.Context, row *models.BranchProductAvailability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"available", "updated_at"}),
		}).
		Create(row).
		Error
}

// UpsertIngredientAvailability writes the (branch, ingredient) flag.
func (r *Repository) UpsertIngredientAvailability(ctx context.Context, row *models.BranchIngredientAvailability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"available", "updated_at"}),
		}).
		Create(row).
		Error
}

func (r *Repository) GetProductAvailability(ctx context.Context, branchID, productID uuid.UUID) (*models.BranchProductAvailability, error) {
	var row models.BranchProductAvailability
	err := r.db.WithContext(ctx).
		First(&row, "branch_id = ? AND product_id = ?", branchID, productID).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) GetIngredientAvailability(ctx context.Context, branchID, ingredientID uuid.UUID) (*models.BranchIngredientAvailability, error) {
	var row models.BranchIngredientAvailability
	err := r.db.WithContext(ctx).
		First(&row, "branch_id = ? AND ingredient_id = ?", branchID, ingredientID).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListProductAvailability(ctx context.Context, branchID uuid.UUID) ([]models.BranchProductAvailability, error) {
	var rows []models.BranchProductAvailability
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("product_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListIngredientAvailability(ctx context.Context, branchID uuid.UUID) ([]models.BranchIngredientAvailability, error) {
	var rows []models.BranchIngredientAvailability
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("ingredient_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
