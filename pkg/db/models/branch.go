package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// Branch is a physical restaurant location. ProductIDs and IngredientIDs are
// denormalized enumeration lists; the availability rows are the yes/no lookup
// surface. Every mutation path must keep the two in sync.
type Branch struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string            `gorm:"column:name;not null"`
	Phone         *string           `gorm:"column:phone"`
	Email         *string           `gorm:"column:email"`
	Address       *string           `gorm:"column:address"`
	Open          bool              `gorm:"column:open;not null;default:false"`
	ProductIDs    dbtypes.UUIDArray `gorm:"column:product_ids;type:uuid[];not null;default:'{}'"`
	IngredientIDs dbtypes.UUIDArray `gorm:"column:ingredient_ids;type:uuid[];not null;default:'{}'"`
	Hours         []BranchHours     `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// BranchHours is one weekly activity window for a branch.
type BranchHours struct {
	ID       uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID uuid.UUID     `gorm:"column:branch_id;type:uuid;not null"`
	Weekday  enums.Weekday `gorm:"column:weekday;not null"`
	OpensAt  string        `gorm:"column:opens_at;not null"`
	ClosesAt string        `gorm:"column:closes_at;not null"`
}

// BranchProductAvailability marks a product sellable at a branch. A missing
// row means unavailable; lookups never invent rows.
type BranchProductAvailability struct {
	BranchID  uuid.UUID `gorm:"column:branch_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Available bool      `gorm:"column:available;not null;default:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BranchIngredientAvailability is the ingredient counterpart of the product
// availability row.
type BranchIngredientAvailability struct {
	BranchID     uuid.UUID `gorm:"column:branch_id;type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	Available    bool      `gorm:"column:available;not null;default:false"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
