package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mvillagranc/mesaboard-backend/api/responses"
	"github.com/mvillagranc/mesaboard-backend/api/validators"
	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
)

type createGroupItemRequest struct {
	ItemID        string           `json:"item_id" validate:"required"`
	ItemType      string           `json:"item_type" validate:"required"`
	OverridePrice *decimal.Decimal `json:"override_price,omitempty"`
}

type updateGroupItemRequest struct {
	ItemID             *string          `json:"item_id,omitempty"`
	ItemType           *string          `json:"item_type,omitempty"`
	OverridePrice      *decimal.Decimal `json:"override_price,omitempty"`
	ClearOverridePrice bool             `json:"clear_override_price,omitempty"`
}

// CreateGroupItem handles group item creation.
func CreateGroupItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createGroupItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := parseRequiredUUID(payload.ItemID, "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemType, err := enums.ParseCatalogItemKind(strings.TrimSpace(payload.ItemType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
			return
		}

		item, err := svc.CreateGroupItem(r.Context(), catalog.CreateGroupItemInput{
			ItemID:        itemID,
			ItemType:      itemType,
			OverridePrice: payload.OverridePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// GetGroupItem returns a single group item by id.
func GetGroupItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetGroupItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ListGroupItems returns a cursor-paged group item list.
func ListGroupItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListGroupItems(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateGroupItem applies a partial update to a group item.
func UpdateGroupItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateGroupItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateGroupItemInput{
			OverridePrice:      payload.OverridePrice,
			ClearOverridePrice: payload.ClearOverridePrice,
		}
		if payload.ItemID != nil {
			itemID, err := parseRequiredUUID(*payload.ItemID, "item_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ItemID = &itemID
		}
		if payload.ItemType != nil {
			itemType, err := enums.ParseCatalogItemKind(strings.TrimSpace(*payload.ItemType))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
				return
			}
			input.ItemType = &itemType
		}

		item, err := svc.UpdateGroupItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// DeleteGroupItem removes a group item after the dependency guard clears it.
func DeleteGroupItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteGroupItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
