package recording

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListRecordings)
	r.Post("/", h.CreateRecording)
	r.Get("/live", h.LiveSession)
	return r
}
