package notebook

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
}

func NewHandler(s Service, maxUploadBytes int64) *Handler {
	return &Handler{service: s, maxUploadBytes: maxUploadBytes}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotebookNotFound):
		config.Error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrEmptyQuestion):
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
	case errors.Is(err, ErrTurnInProgress):
		config.Error(w, http.StatusConflict, "turn_in_progress", err.Error())
	default:
		if document.WriteUploadError(w, err) || aigateway.WriteError(w, err) {
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_id", "invalid notebook id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *Handler) CreateNotebook(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("Usuário não autenticado para criar notebook")
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req CreateNotebookRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	n, err := h.service.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, n)
}

func (h *Handler) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	notebooks, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if notebooks == nil {
		notebooks = []*Notebook{}
	}
	config.JSON(w, http.StatusOK, notebooks)
}

func (h *Handler) GetNotebook(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	view, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	upload, err := document.ReadUpload(w, r, h.maxUploadBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.service.AddDocument(r.Context(), userID, id, upload)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	msgs, err := h.service.Messages(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, msgs)
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req AskRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	msg, err := h.service.Ask(r.Context(), userID, id, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, msg)
}
