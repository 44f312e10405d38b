package branches

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// BranchHoursDTO is one weekly activity window.
type BranchHoursDTO struct {
	Weekday  enums.Weekday `json:"weekday"`
	OpensAt  string        `json:"opens_at"`
	ClosesAt string        `json:"closes_at"`
}

// BranchDTO is the API representation of a branch.
type BranchDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Open          bool             `json:"open"`
	ProductIDs    []uuid.UUID      `json:"product_ids"`
	IngredientIDs []uuid.UUID      `json:"ingredient_ids"`
	Hours         []BranchHoursDTO `json:"hours"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// BranchListResult is one page of branches.
type BranchListResult struct {
	Branches   []BranchDTO `json:"branches"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// AvailabilityDTO reports one availability flag lookup.
type AvailabilityDTO struct {
	BranchID  uuid.UUID `json:"branch_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Available bool      `json:"available"`
}

func toBranchDTO(m *models.Branch) *BranchDTO {
	hours := make([]BranchHoursDTO, 0, len(m.Hours))
	for _, window := range m.Hours {
		hours = append(hours, BranchHoursDTO{
			Weekday:  window.Weekday,
			OpensAt:  window.OpensAt,
			ClosesAt: window.ClosesAt,
		})
	}
	return &BranchDTO{
		ID:            m.ID,
		Name:          m.Name,
		Phone:         m.Phone,
		Email:         m.Email,
		Address:       m.Address,
		Open:          m.Open,
		ProductIDs:    append([]uuid.UUID{}, m.ProductIDs...),
		IngredientIDs: append([]uuid.UUID{}, m.IngredientIDs...),
		Hours:         hours,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
