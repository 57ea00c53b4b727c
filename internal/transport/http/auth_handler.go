package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	auth *app.AuthService
}

func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	session, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	session, err := h.auth.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.auth.SignOut(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", domain.ErrNoSession
	}
	return token, nil
}

// requireAuth resolves the bearer token to a profile and stores it on the
// request context. Missing or revoked sessions get a 401; the client is
// expected to route the user back to the entry point.
func (h *AuthHandler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}
		profile, err := h.auth.CurrentUser(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrNoSession) {
				err = domain.ErrNoSession
			}
			writeError(w, err)
			return
		}
		next(w, r.WithContext(withProfile(r.Context(), profile)))
	}
}
