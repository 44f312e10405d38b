package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// StaffUser is a back-office login identity.
type StaffUser struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string          `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash   string          `gorm:"column:password_hash;not null"`
	FullName       string          `gorm:"column:full_name;not null"`
	Role           enums.StaffRole `gorm:"column:role;not null"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	LastLoggedInAt *time.Time      `gorm:"column:last_logged_in_at"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
