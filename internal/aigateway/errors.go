package aigateway

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindTransport Kind = iota + 1
	KindCredentialMissing
	KindSchemaViolation
)

func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential missing"
	case KindTransport:
		return "transport"
	case KindSchemaViolation:
		return "schema violation"
	}
	return "unknown"
}

var (
	ErrCredentialMissing = errors.New("gemini api key not configured")
	ErrTransport         = errors.New("model request failed")
	ErrSchemaViolation   = errors.New("model response does not match schema")

	// Local precondition failures, raised before any request is built.
	ErrNoDocuments = errors.New("no documents in context")
	ErrEmptyInput  = errors.New("empty input")
)

// User-facing messages for the gateway failures.
const (
	CredentialMissingMessage = "A chave da API do Gemini não foi configurada. Por favor, adicione sua chave no painel de 'Secrets' à esquerda para usar as funcionalidades de IA."
	NoDocumentsMessage       = "Por favor, adicione pelo menos um documento a este notebook antes de fazer uma pergunta."
	ChatFailedMessage        = "Desculpe, ocorreu um erro ao tentar responder."
)

// Error is returned by every gateway operation that reached the provider.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("aigateway %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrCredentialMissing:
		return e.Kind == KindCredentialMissing
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrSchemaViolation:
		return e.Kind == KindSchemaViolation
	}
	return false
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return err
	}
	if errors.Is(err, ErrCredentialMissing) {
		return &Error{Op: op, Kind: KindCredentialMissing, Err: err}
	}
	return &Error{Op: op, Kind: KindTransport, Err: err}
}

func schemaError(op string, format string, args ...any) error {
	return &Error{Op: op, Kind: KindSchemaViolation, Err: fmt.Errorf(format, args...)}
}
