package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"
)

// Product is a sellable menu item. GroupIDs holds the ordered product-group
// references that make the product composable; an empty list means a plain
// item. References are plain ids with no foreign-key enforcement, so the
// dependency guard is the only thing standing between a delete and a dangling
// edge.
type Product struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string             `gorm:"column:name;not null"`
	Description     *string            `gorm:"column:description"`
	BasePrice       decimal.Decimal    `gorm:"column:base_price;type:numeric(10,2);not null"`
	DiscountedPrice *decimal.Decimal   `gorm:"column:discounted_price;type:numeric(10,2)"`
	Category        *string            `gorm:"column:category"`
	Tags            pq.StringArray     `gorm:"column:tags;type:text[]"`
	GroupIDs        dbtypes.UUIDArray  `gorm:"column:group_ids;type:uuid[];not null;default:'{}'"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
