package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *StaffUserDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateStaffRequest is the payload to provision a back-office login.
type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// CreateStaffResponse returns the new user alongside the one-time password.
type CreateStaffResponse struct {
	User         *StaffUserDTO `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// StaffUserDTO is the API projection of a staff user.
type StaffUserDTO struct {
	ID             uuid.UUID       `json:"id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	Role           enums.StaffRole `json:"role"`
	IsActive       bool            `json:"is_active"`
	LastLoggedInAt *time.Time      `json:"last_logged_in_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// FromModel converts a staff user model into its DTO.
func FromModel(m *models.StaffUser) *StaffUserDTO {
	if m == nil {
		return nil
	}
	return &StaffUserDTO{
		ID:             m.ID,
		Email:          m.Email,
		FullName:       m.FullName,
		Role:           m.Role,
		IsActive:       m.IsActive,
		LastLoggedInAt: m.LastLoggedInAt,
		CreatedAt:      m.CreatedAt,
	}
}
