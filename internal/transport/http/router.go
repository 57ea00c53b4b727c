package http

import (
	"net/http"

	"quizmatch-service/internal/app"
)

// NewRouter wires every handler onto a mux with CORS applied across the
// board.
func NewRouter(auth *app.AuthService, quiz *app.QuizService, matches *app.MatchService, profiles app.ProfileStore) http.Handler {
	authHandler := NewAuthHandler(auth)
	quizHandler := NewQuizHandler(quiz)
	matchHandler := NewMatchHandler(matches)
	userHandler := NewUserHandler(profiles)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/me", authHandler.requireAuth(authHandler.Me))

	mux.HandleFunc("GET /users/{id}", userHandler.Get)
	mux.HandleFunc("PATCH /users/{id}", userHandler.Patch)

	mux.HandleFunc("GET /quiz/questions", quizHandler.Questions)
	mux.HandleFunc("POST /quiz/attempts", authHandler.requireAuth(quizHandler.Start))
	mux.HandleFunc("POST /quiz/attempts/answers", authHandler.requireAuth(quizHandler.Answer))
	mux.HandleFunc("POST /quiz/attempts/submit", authHandler.requireAuth(quizHandler.Resubmit))

	mux.HandleFunc("GET /matches", authHandler.requireAuth(matchHandler.ListPending))
	mux.HandleFunc("POST /matches/{matchedUserId}/connect", authHandler.requireAuth(matchHandler.Connect))

	return withCORS(mux)
}
