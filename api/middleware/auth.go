package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/api/responses"
	pkgAuth "github.com/exportracker/quotation-backend/pkg/auth"
	"github.com/exportracker/quotation-backend/pkg/config"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
)

const devEmailHeader = "X-User-Email"

// UserResolver maps an authenticated email to its user id.
type UserResolver interface {
	LookupUserID(ctx context.Context, email string) (uuid.UUID, error)
}

// IdentityOptions configures how callers are identified.
type IdentityOptions struct {
	JWT            config.JWTConfig
	AllowDevHeader bool
}

// Auth identifies the caller from a bearer token, or from the X-User-Email
// header when dev identities are allowed, and seeds the request context with
// the resolved user id.
func Auth(opts IdentityOptions, users UserResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if users == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity resolver unavailable"))
				return
			}

			email, err := callerEmail(opts, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			userID, err := users.LookupUserID(r.Context(), email)
			if err != nil {
				if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
					err = pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown caller")
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUserID(r.Context(), userID.String())
			ctx = withEmail(ctx, email)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerEmail(opts IdentityOptions, r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		if opts.AllowDevHeader {
			if email := strings.TrimSpace(r.Header.Get(devEmailHeader)); email != "" {
				return email, nil
			}
		}
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgAuth.ParseAccessToken(opts.JWT, token)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	return claims.Email, nil
}
