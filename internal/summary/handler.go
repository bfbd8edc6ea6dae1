package summary

import (
	"net/http"

	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	summaries, err := h.service.List(r.Context(), userID, r.URL.Query().Get("folder"))
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	folders, err := h.service.Folders(r.Context(), userID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, folders)
}
