package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
)

type guardSource interface {
	ListGroupItemsByTarget(ctx context.Context, itemID uuid.UUID, itemType enums.CatalogItemKind) ([]models.GroupItem, error)
	ListAllGroups(ctx context.Context) ([]models.ProductGroup, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)
}

// Guard scans reverse references before a catalog entity is deleted. The
// graph keeps edges as plain id lists with no database-level integrity, so
// the guard is the only thing standing between a delete and a dangling edge.
//
// Membership tests run on parsed ids, never on the serialized array literal.
type Guard struct {
	source guardSource
}

// NewGuard constructs a dependency guard over the provided source.
func NewGuard(source guardSource) (*Guard, error) {
	if source == nil {
		return nil, fmt.Errorf("guard source required")
	}
	return &Guard{source: source}, nil
}

// FindDependants returns stable, deduplicated labels for every entity that
// still references the target, expanded transitively: a leaf is blocked by
// its wrapping group items, the groups containing those items, and the
// products referencing those groups.
func (g *Guard) FindDependants(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) ([]string, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown deletable kind %q", kind))
	}

	groups, err := g.source.ListAllGroups(ctx)
	if err != nil {
		return nil, err
	}
	products, err := g.source.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	set := newLabelSet()
	switch kind {
	case enums.DeletableKindIngredient:
		if err := g.collectLeafDependants(ctx, id, enums.CatalogItemKindIngredient, groups, products, set); err != nil {
			return nil, err
		}
	case enums.DeletableKindProduct:
		if err := g.collectLeafDependants(ctx, id, enums.CatalogItemKindProduct, groups, products, set); err != nil {
			return nil, err
		}
	case enums.DeletableKindGroupItem:
		collectGroupItemDependants(id, groups, products, set)
	case enums.DeletableKindProductGroup:
		collectGroupDependants(id, products, set)
	}

	return set.sorted(), nil
}

// CanDelete runs the dependant scan and reports whether the delete may
// proceed, along with whatever blocks it.
func (g *Guard) CanDelete(ctx context.Context, kind enums.DeletableKind, id uuid.UUID) (bool, []string, error) {
	labels, err := g.FindDependants(ctx, kind, id)
	if err != nil {
		return false, nil, err
	}
	return len(labels) == 0, labels, nil
}

func (g *Guard) collectLeafDependants(
	ctx context.Context,
	id uuid.UUID,
	itemType enums.CatalogItemKind,
	groups []models.ProductGroup,
	products []models.Product,
	set *labelSet,
) error {
	wrappers, err := g.source.ListGroupItemsByTarget(ctx, id, itemType)
	if err != nil {
		return err
	}
	for _, wrapper := range wrappers {
		set.add(groupItemLabel(wrapper))
		collectGroupItemDependants(wrapper.ID, groups, products, set)
	}
	return nil
}

func collectGroupItemDependants(itemID uuid.UUID, groups []models.ProductGroup, products []models.Product, set *labelSet) {
	for _, group := range groups {
		if !group.GroupItemIDs.Contains(itemID) {
			continue
		}
		set.add(groupLabel(group))
		collectGroupDependants(group.ID, products, set)
	}
}

func collectGroupDependants(groupID uuid.UUID, products []models.Product, set *labelSet) {
	for _, product := range products {
		if product.GroupIDs.Contains(groupID) {
			set.add(productLabel(product))
		}
	}
}

func groupItemLabel(item models.GroupItem) string {
	return fmt.Sprintf("group_item %s (%s %s)", item.ID, item.ItemType, item.ItemID)
}

func groupLabel(group models.ProductGroup) string {
	return fmt.Sprintf("product_group %q (%s)", group.Name, group.ID)
}

func productLabel(product models.Product) string {
	return fmt.Sprintf("product %q (%s)", product.Name, product.ID)
}

type labelSet struct {
	seen   map[string]struct{}
	labels []string
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]struct{})}
}

func (s *labelSet) add(label string) {
	if _, ok := s.seen[label]; ok {
		return
	}
	s.seen[label] = struct{}{}
	s.labels = append(s.labels, label)
}

func (s *labelSet) sorted() []string {
	sort.Strings(s.labels)
	return s.labels
}
