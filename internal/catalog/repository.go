package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// Repository wires together persistence for the four catalog entities.
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

// Ingredients.

func (r *Repository) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (r *Repository) UpdateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (r *Repository) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ingredient{}).Error
}

func (r *Repository) FindIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *Repository) ListIngredients(ctx context.Context, params pagination.Params) ([]models.Ingredient, error) {
	var rows []models.Ingredient
	qb, err := r.pagedQuery(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Products.

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context, params pagination.Params) ([]models.Product, error) {
	var rows []models.Product
	qb, err := r.pagedQuery(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAllProducts loads the full product table. The dependency guard walks
// reference lists in memory, so it needs the whole adjacency structure.
func (r *Repository) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Product groups.

func (r *Repository) CreateGroup(ctx context.Context, group *models.ProductGroup) (*models.ProductGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *Repository) UpdateGroup(ctx context.Context, group *models.ProductGroup) (*models.ProductGroup, error) {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *Repository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductGroup{}).Error
}

func (r *Repository) FindGroupByID(ctx context.Context, id uuid.UUID) (*models.ProductGroup, error) {
	var group models.ProductGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *Repository) ListGroups(ctx context.Context, params pagination.Params) ([]models.ProductGroup, error) {
	var rows []models.ProductGroup
	qb, err := r.pagedQuery(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListAllGroups(ctx context.Context) ([]models.ProductGroup, error) {
	var rows []models.ProductGroup
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Group items.

func (r *Repository) CreateGroupItem(ctx context.Context, item *models.GroupItem) (*models.GroupItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) UpdateGroupItem(ctx context.Context, item *models.GroupItem) (*models.GroupItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) DeleteGroupItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GroupItem{}).Error
}

func (r *Repository) FindGroupItemByID(ctx context.Context, id uuid.UUID) (*models.GroupItem, error) {
	var item models.GroupItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListGroupItemsByIDs fetches the requested group items and returns them in
// the order of the ids argument. Missing ids are simply absent from the result.
func (r *Repository) ListGroupItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.GroupItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.GroupItem, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.GroupItem, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// ListGroupItemsByTarget returns every group item wrapping the given leaf.
func (r *Repository) ListGroupItemsByTarget(ctx context.Context, itemID uuid.UUID, itemType enums.CatalogItemKind) ([]models.GroupItem, error) {
	var rows []models.GroupItem
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND item_type = ?", itemID, itemType).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListGroupItems(ctx context.Context, params pagination.Params) ([]models.GroupItem, error) {
	var rows []models.GroupItem
	qb, err := r.pagedQuery(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) pagedQuery(ctx context.Context, params pagination.Params) (*gorm.DB, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	qb := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	return qb, nil
}
