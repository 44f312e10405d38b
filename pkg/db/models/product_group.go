package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// ProductGroup is a named, typed, ordered set of group items. GroupItemIDs
// order drives display order when the group is resolved. Every member's
// item_type must match the group's Type; the catalog service rejects
// mismatches at create/update time.
type ProductGroup struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Type         enums.CatalogItemKind `gorm:"column:type;not null"`
	GroupItemIDs dbtypes.UUIDArray     `gorm:"column:group_item_ids;type:uuid[];not null;default:'{}'"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
