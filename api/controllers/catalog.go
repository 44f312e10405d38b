package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvillagranc/mesaboard-backend/api/responses"
	"github.com/mvillagranc/mesaboard-backend/api/validators"
	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
)

// CheckDeletable reports whether a catalog entity can be deleted and, when it
// cannot, which entities still reference it.
func CheckDeletable(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := enums.ParseDeletableKind(strings.TrimSpace(chi.URLParam(r, "kind")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind"))
			return
		}
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		check, err := svc.CheckDeletable(r.Context(), kind, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, check)
	}
}

func parseRequiredUUID(raw, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid uuid").WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}
