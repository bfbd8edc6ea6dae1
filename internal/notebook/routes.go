package notebook

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListNotebooks)
	r.Post("/", h.CreateNotebook)
	r.Get("/{id}", h.GetNotebook)
	r.Post("/{id}/documents", h.AddDocument)
	r.Get("/{id}/messages", h.ListMessages)
	r.Post("/{id}/messages", h.Ask)
	return r
}
