package enums

import "fmt"

// CatalogItemKind distinguishes the two leaf kinds a group item can wrap.
// The same enum types a ProductGroup: a product group bundles related menu
// items, an ingredient group is a customer-facing customization slot.
type CatalogItemKind string

const (
	CatalogItemKindProduct    CatalogItemKind = "product"
	CatalogItemKindIngredient CatalogItemKind = "ingredient"
)

var validCatalogItemKinds = []CatalogItemKind{
	CatalogItemKindProduct,
	CatalogItemKindIngredient,
}

// String implements fmt.Stringer.
func (k CatalogItemKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known CatalogItemKind.
func (k CatalogItemKind) IsValid() bool {
	for _, candidate := range validCatalogItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCatalogItemKind converts raw input into a CatalogItemKind.
func ParseCatalogItemKind(value string) (CatalogItemKind, error) {
	for _, candidate := range validCatalogItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog item kind %q", value)
}

// DeletableKind enumerates the entity kinds the dependency guard protects.
type DeletableKind string

const (
	DeletableKindIngredient   DeletableKind = "ingredient"
	DeletableKindProduct      DeletableKind = "product"
	DeletableKindProductGroup DeletableKind = "product_group"
	DeletableKindGroupItem    DeletableKind = "group_item"
)

var validDeletableKinds = []DeletableKind{
	DeletableKindIngredient,
	DeletableKindProduct,
	DeletableKindProductGroup,
	DeletableKindGroupItem,
}

// String implements fmt.Stringer.
func (k DeletableKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known DeletableKind.
func (k DeletableKind) IsValid() bool {
	for _, candidate := range validDeletableKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseDeletableKind converts raw input into a DeletableKind.
func ParseDeletableKind(value string) (DeletableKind, error) {
	for _, candidate := range validDeletableKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deletable kind %q", value)
}
