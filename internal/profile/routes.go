package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetProfile)
	r.Patch("/", h.UpdateProfile)
	r.Get("/stats", h.GetStats)
	return r
}
