package recording

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

const SummaryFailedMessage = "Ocorreu um erro ao gerar o resumo da gravação."

type Handler struct {
	service  Service
	live     aigateway.LiveTranscriber
	upgrader websocket.Upgrader
}

func NewHandler(s Service, live aigateway.LiveTranscriber, allowedOrigins []string) *Handler {
	return &Handler{
		service: s,
		live:    live,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoSpeech) {
		config.Error(w, http.StatusUnprocessableEntity, "no_speech", err.Error())
		return
	}
	if !aigateway.WriteError(w, err) {
		config.Error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoSpeech):
		return err.Error()
	case errors.Is(err, aigateway.ErrCredentialMissing):
		return aigateway.CredentialMissingMessage
	}
	return SummaryFailedMessage
}

func (h *Handler) ListRecordings(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	recs, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, recs)
}

func (h *Handler) CreateRecording(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req CreateRecordingRequest
	if err := config.DecodeAndValidate(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	rec, err := h.service.Create(r.Context(), userID, req.Transcription)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, rec)
}

// LiveSession upgrades to a websocket once the upstream live session is open,
// so a missing credential is still reported as a plain HTTP error.
func (h *Handler) LiveSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	stream, err := h.live.Open(r.Context())
	if err != nil {
		log.WithError(err).Error("Não foi possível iniciar a gravação")
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Falha no upgrade para websocket")
		stream.Close()
		return
	}
	defer conn.Close()

	rec, err := h.service.Live(r.Context(), userID, stream, conn)
	msg := LiveMessage{Type: MessageSaved, Recording: rec}
	if err != nil {
		msg = LiveMessage{Type: MessageError, Error: userMessage(err)}
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.WithError(err).Debug("Navegador desconectou antes do resultado")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
