package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/credstore-go/apperror"
)

// TokenIssuer mints a bearer token for a freshly created user. Implemented by
// the auth package; declared here so the handlers depend only on the
// capability.
type TokenIssuer interface {
	Issue(u *User) (string, error)
}

// Handlers exposes the credential store over HTTP.
type Handlers struct {
	service *Service
	tokens  TokenIssuer
}

// NewHandlers creates the user HTTP handlers.
func NewHandlers(service *Service, tokens TokenIssuer) *Handlers {
	return &Handlers{service: service, tokens: tokens}
}

// HandleList serves GET /users.
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.service.List(r.Context())
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, out)
	}
}

// HandleGet serves GET /users/{id}.
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}

		u, err := h.service.Get(r.Context(), id)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, u)
	}
}

// HandleCreate serves POST /users: it persists the new record and responds
// with a minted bearer token.
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CredentialInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apperror.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		created, err := h.service.Create(r.Context(), input)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}

		token, err := h.tokens.Issue(created)
		if err != nil {
			apperror.WriteError(w, apperror.NewInternalError("could not issue token", err))
			return
		}
		apperror.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}

// HandleUpdate serves PUT /users/{id}. Ownership is enforced by the guard
// middleware composed in front of this handler.
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}

		var input CredentialInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apperror.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		updated, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, updated)
	}
}

// HandleDelete serves DELETE /users/{id} and responds with the removed
// record.
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}

		deleted, err := h.service.Delete(r.Context(), id)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, deleted)
	}
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError("id must be an integer", err)
	}
	return id, nil
}
