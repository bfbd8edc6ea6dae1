package quiz

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoQuestions):
		config.Error(w, http.StatusUnprocessableEntity, "no_questions", err.Error())
	case errors.Is(err, ErrInvalidChoice):
		config.Error(w, http.StatusBadRequest, "invalid_choice", err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrAlreadyAnswered), errors.Is(err, ErrNotAnswered):
		config.Error(w, http.StatusConflict, "invalid_state", err.Error())
	default:
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	config.JSON(w, http.StatusOK, h.service.Current(r.Context(), userID))
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	topics, err := h.service.Topics(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, topics)
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("Usuário não autenticado para iniciar simulado")
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req StartRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	view, err := h.service.Start(r.Context(), userID, req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, view)
}

func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req AnswerRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	correct, view, err := h.service.Answer(r.Context(), userID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, AnswerResponse{Correct: correct, View: view})
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	view, attempt, err := h.service.Advance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, AdvanceResponse{View: view, Attempt: attempt})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	config.JSON(w, http.StatusOK, h.service.Reset(r.Context(), userID))
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	attempts, err := h.service.Attempts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, attempts)
}
