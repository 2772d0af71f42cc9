package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/exportracker/quotation-backend/api/responses"
	"github.com/exportracker/quotation-backend/api/validators"
	"github.com/exportracker/quotation-backend/internal/quotations"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
	"github.com/exportracker/quotation-backend/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func quotationsUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
}

// QuotationCreate prices the request and stores it as a draft.
func QuotationCreate(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		var input quotations.CreateQuotationInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotation, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quotation)
	}
}

// QuotationPreview prices the request without storing anything.
func QuotationPreview(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		var input quotations.CreateQuotationInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Preview(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

func QuotationList(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, quotations.ListQuery{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			Limit:  limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func QuotationDetail(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}
		quotationID, err := pathUUID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotation, err := svc.Get(r.Context(), userID, quotationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotation)
	}
}

// QuotationStatus applies a lifecycle transition to one of the caller's
// quotations.
func QuotationStatus(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}
		quotationID, err := pathUUID(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input quotations.StatusInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotation, err := svc.Transition(r.Context(), userID, quotationID, input.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotation)
	}
}

// QuotationTotals sums the caller's quotations for the company matched by
// ?company=.
func QuotationTotals(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		total, err := svc.TotalByCompany(r.Context(), userID, searchQuery(r, "company"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, total)
	}
}

// QuotationExport streams the caller's quotations as an xlsx workbook. The
// workbook is rendered in memory first so failures still produce a JSON error.
func QuotationExport(svc quotations.Service, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			quotationsUnavailable(w, r, logg)
			return
		}
		userID, ok := requireCaller(w, r, logg)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := svc.Export(r.Context(), userID, &buf); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quotations.ExportFilename(now())))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Error(r.Context(), "write export", err)
		}
	}
}
