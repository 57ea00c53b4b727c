package http

import (
	"net/http"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
)

// MatchHandler exposes the pending-match list and the connect action.
type MatchHandler struct {
	matches *app.MatchService
}

func NewMatchHandler(matches *app.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	pending, err := h.matches.PendingMatches(r.Context(), profile.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if pending == nil {
		pending = []domain.PendingMatch{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *MatchHandler) Connect(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	if err := h.matches.Connect(r.Context(), profile.ID, r.PathValue("matchedUserId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
