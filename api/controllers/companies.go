package controllers

import (
	"net/http"

	"github.com/exportracker/quotation-backend/api/responses"
	"github.com/exportracker/quotation-backend/api/validators"
	"github.com/exportracker/quotation-backend/internal/companies"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
)

// CompanyList returns the caller's companies in creation order.
func CompanyList(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
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
		responses.WriteSuccess(w, map[string]any{"companies": items})
	}
}

func CompanyCreate(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		var input companies.CreateCompanyInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, company)
	}
}

// CompanyResolve returns the first of the caller's companies whose name
// contains ?q=.
func CompanyResolve(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		company, err := svc.Resolve(r.Context(), userID, searchQuery(r, "q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, company)
	}
}
