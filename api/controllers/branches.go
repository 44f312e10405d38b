package controllers

import (
	"net/http"
	"strings"

	"github.com/mvillagranc/mesaboard-backend/api/responses"
	"github.com/mvillagranc/mesaboard-backend/api/validators"
	"github.com/mvillagranc/mesaboard-backend/internal/branches"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
)

type branchHoursRequest struct {
	Weekday  string `json:"weekday" validate:"required"`
	OpensAt  string `json:"opens_at" validate:"required"`
	ClosesAt string `json:"closes_at" validate:"required"`
}

type createBranchRequest struct {
	Name    string               `json:"name" validate:"required"`
	Phone   *string              `json:"phone,omitempty"`
	Email   *string              `json:"email,omitempty" validate:"omitempty,email"`
	Address *string              `json:"address,omitempty"`
	Open    bool                 `json:"open"`
	Hours   []branchHoursRequest `json:"hours,omitempty"`
}

type updateBranchRequest struct {
	Name    *string               `json:"name,omitempty"`
	Phone   *string               `json:"phone,omitempty"`
	Email   *string               `json:"email,omitempty" validate:"omitempty,email"`
	Address *string               `json:"address,omitempty"`
	Open    *bool                 `json:"open,omitempty"`
	Hours   *[]branchHoursRequest `json:"hours,omitempty"`
}

type productAvailabilityRequest struct {
	Active  bool  `json:"active"`
	Cascade *bool `json:"cascade,omitempty"`
}

type ingredientAvailabilityRequest struct {
	Active bool `json:"active"`
}

func toHoursInputs(windows []branchHoursRequest) []branches.HoursInput {
	inputs := make([]branches.HoursInput, 0, len(windows))
	for _, window := range windows {
		inputs = append(inputs, branches.HoursInput{
			Weekday:  enums.Weekday(strings.ToLower(strings.TrimSpace(window.Weekday))),
			OpensAt:  window.OpensAt,
			ClosesAt: window.ClosesAt,
		})
	}
	return inputs
}

// CreateBranch handles branch creation.
func CreateBranch(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBranchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		branch, err := svc.CreateBranch(r.Context(), branches.CreateBranchInput{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Address: payload.Address,
			Open:    payload.Open,
			Hours:   toHoursInputs(payload.Hours),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, branch)
	}
}

// GetBranch returns a single branch with its hours.
func GetBranch(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branch, err := svc.GetBranch(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, branch)
	}
}

// ListBranches returns a cursor-paged branch list.
func ListBranches(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListBranches(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateBranch applies a partial update to a branch.
func UpdateBranch(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBranchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := branches.UpdateBranchInput{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Address: payload.Address,
			Open:    payload.Open,
		}
		if payload.Hours != nil {
			hours := toHoursInputs(*payload.Hours)
			input.Hours = &hours
		}

		branch, err := svc.UpdateBranch(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, branch)
	}
}

// DeleteBranch removes a branch along with its hours and availability rows.
func DeleteBranch(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteBranch(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SetProductAvailability enables or disables a product at a branch. Enabling
// cascades through the composition graph unless cascade is false; disabling
// never cascades.
func SetProductAvailability(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productAvailabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cascade := payload.Cascade == nil || *payload.Cascade
		switch {
		case payload.Active && cascade:
			err = svc.EnableProduct(r.Context(), branchID, productID)
		case payload.Active:
			err = svc.SetProductAvailability(r.Context(), branchID, productID, true)
		default:
			err = svc.RemoveProduct(r.Context(), branchID, productID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability, err := svc.IsProductAvailable(r.Context(), branchID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}

// SetIngredientAvailability flips a single ingredient flag, no propagation.
func SetIngredientAvailability(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ingredientID, err := validators.ParseUUIDParam(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ingredientAvailabilityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetIngredientAvailability(r.Context(), branchID, ingredientID, payload.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability, err := svc.IsIngredientAvailable(r.Context(), branchID, ingredientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}

// GetProductAvailability is the closed-world availability lookup for products.
func GetProductAvailability(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability, err := svc.IsProductAvailable(r.Context(), branchID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}

// GetIngredientAvailability is the closed-world availability lookup for ingredients.
func GetIngredientAvailability(svc branches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseUUIDParam(r, "branchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ingredientID, err := validators.ParseUUIDParam(r, "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability, err := svc.IsIngredientAvailable(r.Context(), branchID, ingredientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}
