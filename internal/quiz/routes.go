package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetSession)
	r.Get("/topics", h.ListTopics)
	r.Get("/attempts", h.ListAttempts)
	r.Post("/start", h.StartQuiz)
	r.Post("/answer", h.AnswerQuestion)
	r.Post("/advance", h.Advance)
	r.Post("/reset", h.Reset)
	return r
}
