package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/credstore-go/apperror"
)

// RequireAuth gates protected routes. A request advances through header
// presence, token verification, and claim attachment; any failure rejects
// with 401 and the downstream handler is never invoked.
func RequireAuth(verifier *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apperror.WriteError(w, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				apperror.WriteError(w, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				apperror.WriteError(w, apperror.NewAuthError("invalid token", err))
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner enforces the ownership check on resource-scoped operations:
// the authenticated user id must equal the id named by the URL parameter.
// A mismatch is 403, not 401 — the caller is authenticated, just not
// entitled to the target record. Compose after RequireAuth.
func RequireOwner(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apperror.WriteError(w, apperror.NewAuthError("no authentication context", nil))
				return
			}

			targetID, err := strconv.Atoi(chi.URLParam(r, param))
			if err != nil {
				apperror.WriteError(w, apperror.NewValidationError("id must be an integer", err))
				return
			}

			if claims.UserID != targetID {
				apperror.WriteError(w, apperror.NewForbiddenError("you are not allowed to modify this user", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
