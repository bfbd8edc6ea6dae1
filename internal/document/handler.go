package document

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
}

func NewHandler(s Service, maxUploadBytes int64) *Handler {
	return &Handler{service: s, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	docs, err := h.service.List(r.Context(), userID, r.URL.Query().Get("folder"))
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, docs)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("ID do documento inválido")
		config.Error(w, http.StatusBadRequest, "invalid_id", "invalid document id")
		return
	}

	doc, err := h.service.Get(r.Context(), userID, id)
	if errors.Is(err, ErrDocumentNotFound) {
		config.Error(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusOK, doc)
}

func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	upload, err := ReadUpload(w, r, h.maxUploadBytes)
	if err != nil {
		if !WriteUploadError(w, err) {
			log.WithError(err).Error("Erro ao ler upload")
			config.Error(w, http.StatusBadRequest, "invalid_upload", "invalid upload")
		}
		return
	}

	draft, err := h.service.Analyze(r.Context(), userID, upload, r.FormValue("folder"))
	if err != nil {
		if WriteUploadError(w, err) || aigateway.WriteError(w, err) {
			return
		}
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusCreated, draft)
}

func (h *Handler) RenameDraft(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	draftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_id", "invalid draft id")
		return
	}

	var req RenameDraftRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	draft, err := h.service.RenameDraft(r.Context(), userID, draftID, req.Title)
	switch {
	case errors.Is(err, ErrInvalidTitle):
		config.Error(w, http.StatusBadRequest, "invalid_title", err.Error())
	case errors.Is(err, ErrDraftNotFound):
		config.Error(w, http.StatusNotFound, "not_found", err.Error())
	case err != nil:
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
	default:
		config.JSON(w, http.StatusOK, draft)
	}
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	draftID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_id", "invalid draft id")
		return
	}

	doc, err := h.service.SaveDraft(r.Context(), userID, draftID)
	if errors.Is(err, ErrDraftNotFound) {
		config.Error(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	config.JSON(w, http.StatusCreated, doc)
}
