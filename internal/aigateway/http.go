package aigateway

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/odontomind-api/internal/config"
)

// WriteError translates gateway failures into HTTP responses. It returns false
// when err is not a gateway failure, leaving the response untouched.
func WriteError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		config.Error(w, http.StatusServiceUnavailable, "credential_missing", CredentialMissingMessage)
	case errors.Is(err, ErrNoDocuments):
		config.Error(w, http.StatusUnprocessableEntity, "no_documents", NoDocumentsMessage)
	case errors.Is(err, ErrEmptyInput):
		config.Error(w, http.StatusUnprocessableEntity, "empty_input", "o conteúdo enviado está vazio")
	case errors.Is(err, ErrSchemaViolation):
		config.Error(w, http.StatusBadGateway, "schema_violation", "Ocorreu um erro ao se comunicar com a IA. Tente novamente.")
	case errors.Is(err, ErrTransport):
		config.Error(w, http.StatusBadGateway, "ai_unavailable", "Ocorreu um erro ao se comunicar com a IA. Tente novamente.")
	default:
		return false
	}
	return true
}

// UserMessage is the text shown to the user for a failed chat turn.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		return CredentialMissingMessage
	case errors.Is(err, ErrNoDocuments):
		return NoDocumentsMessage
	}
	return ChatFailedMessage
}
