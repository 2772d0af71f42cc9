package controllers

import (
	"net/http"

	"github.com/exportracker/quotation-backend/api/responses"
	"github.com/exportracker/quotation-backend/api/validators"
	"github.com/exportracker/quotation-backend/internal/destinations"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
)

// DestinationList returns the caller's destinations in creation order.
func DestinationList(svc destinations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "destinations service unavailable"))
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"destinations": items})
	}
}

func DestinationCreate(svc destinations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "destinations service unavailable"))
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		var input destinations.CreateDestinationInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		destination, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, destination)
	}
}

// DestinationResolve matches ?q= against country names first and falls back
// to port names.
func DestinationResolve(svc destinations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "destinations service unavailable"))
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		destination, err := svc.Resolve(r.Context(), userID, searchQuery(r, "q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, destination)
	}
}
