package profile

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

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	p, err := h.service.UpdatePeriodo(r.Context(), userID, req.Periodo)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	d, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, d)
}
