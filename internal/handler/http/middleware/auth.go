package middleware

import (
	"net/http"

	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests whose token failed verification, is not an
// access token, or does not carry a resolvable caller identity. Handlers
// behind it can rely on auth.IdentityFromContext succeeding.
// jwtauth.Verifier must run before this middleware.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// user_id and organization_id are mandatory on access tokens;
			// a token without a tenant must never reach a repository query.
			if _, err := auth.IdentityFromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
