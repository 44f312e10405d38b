package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// GroupItem is a priced wrapper around exactly one ingredient or one product,
// acting as the many-to-many join between groups and leaf items. A nil
// OverridePrice inherits the wrapped item's base price; a zero value is a
// real override meaning "free", so the column must stay nullable rather than
// using a sentinel.
type GroupItem struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID        uuid.UUID             `gorm:"column:item_id;type:uuid;not null"`
	ItemType      enums.CatalogItemKind `gorm:"column:item_type;not null"`
	OverridePrice *decimal.Decimal      `gorm:"column:override_price;type:numeric(10,2)"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
