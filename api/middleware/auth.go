package middleware

import (
	"net/http"
	"strings"

	"github.com/yukselticaret/trendyshop-backend/api/responses"
	pkgAuth "github.com/yukselticaret/trendyshop-backend/pkg/auth"
	"github.com/yukselticaret/trendyshop-backend/pkg/config"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

// Auth validates a Supabase access token and seeds the request context with
// the caller's user id and role.
func Auth(cfg config.SupabaseConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid subject"))
				return
			}

			role := claims.AppMetadata.Role
			ctx := WithUserID(r.Context(), userID.String())
			ctx = WithRole(ctx, role)

			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
				if role != "" {
					ctx = logg.WithActorRole(ctx, role)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
