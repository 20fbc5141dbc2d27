package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/credstore-go/apperror"
	"github.com/user/credstore-go/users"
)

// Handlers exposes the authentication operation over HTTP.
type Handlers struct {
	service *Service
	tokens  *TokenIssuer
}

// NewHandlers creates the auth HTTP handlers.
func NewHandlers(service *Service, tokens *TokenIssuer) *Handlers {
	return &Handlers{service: service, tokens: tokens}
}

// HandleAuthenticate serves POST /users/authenticate: it verifies the
// credentials and responds with a minted bearer token.
func (h *Handlers) HandleAuthenticate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthenticateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if req.Username == "" || req.Password == "" {
			apperror.WriteError(w, apperror.NewValidationError("username and password are required", nil))
			return
		}

		u, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		if u == nil {
			apperror.WriteError(w, apperror.NewAuthError("wrong username or password", nil))
			return
		}

		token, err := h.tokens.Issue(u)
		if err != nil {
			apperror.WriteError(w, apperror.NewInternalError("could not issue token", err))
			return
		}
		apperror.WriteJSON(w, http.StatusOK, users.TokenResponse{Token: token})
	}
}
