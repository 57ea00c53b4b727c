package http

import (
	"encoding/json"
	"net/http"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
)

// UserHandler exposes the profile CRUD boundary consumed by the presentation
// layer.
type UserHandler struct {
	profiles app.ProfileStore
}

func NewUserHandler(profiles app.ProfileStore) *UserHandler {
	return &UserHandler{profiles: profiles}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if patch.Empty() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "no fields to update"})
		return
	}
	if patch.Score != nil && *patch.Score < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "score must not be negative"})
		return
	}

	profile, err := h.profiles.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
