package http

import (
	"encoding/json"
	"net/http"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
)

// QuizHandler exposes question listing and the per-answer attempt flow.
type QuizHandler struct {
	quiz *app.QuizService
}

func NewQuizHandler(quiz *app.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// questionView strips the correct option before questions leave the server.
type questionView struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type answerRequest struct {
	Option int `json:"option"`
}

func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quiz.Questions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{ID: q.ID, Prompt: q.Prompt, Options: q.Options})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	snap, err := h.quiz.Start(r.Context(), profile.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	var in answerRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	result, err := h.quiz.Answer(r.Context(), profile.ID, in.Option)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Resubmit retries persistence for an attempt stuck in the failed state.
func (h *QuizHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrNoSession)
		return
	}
	result, err := h.quiz.Resubmit(r.Context(), profile.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
