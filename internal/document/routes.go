package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListDocuments)
	r.Post("/analyze", h.AnalyzeDocument)
	r.Get("/{id}", h.GetDocument)
	r.Patch("/drafts/{id}", h.RenameDraft)
	r.Post("/drafts/{id}/save", h.SaveDraft)
	return r
}
