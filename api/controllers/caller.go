package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/api/middleware"
	"github.com/exportracker/quotation-backend/api/responses"
	"github.com/exportracker/quotation-backend/api/validators"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
)

const maxQueryLength = 255

// requireCaller writes an error and returns false when the identity
// middleware has not resolved a caller.
func requireCaller(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller not identified"))
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param).WithDetails(map[string]any{"field": param})
	}
	return id, nil
}

func searchQuery(r *http.Request, key string) string {
	return validators.SanitizeString(r.URL.Query().Get(key), maxQueryLength)
}
