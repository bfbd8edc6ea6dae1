package notebook

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
)

var (
	ErrNotebookNotFound = errors.New("notebook não encontrado")
	ErrInvalidName      = errors.New("o nome do notebook não pode ficar vazio")
	ErrEmptyQuestion    = errors.New("a pergunta não pode ficar vazia")
	ErrTurnInProgress   = errors.New("aguarde a resposta anterior antes de enviar outra pergunta")
)

// DocumentStore is what notebooks need from the document store.
type DocumentStore interface {
	Ingest(ctx context.Context, userID uuid.UUID, upload document.Upload, folder string) (*document.Document, error)
	GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*document.Document, error)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*Notebook, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Notebook, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*NotebookView, error)
	AddDocument(ctx context.Context, userID, id uuid.UUID, upload document.Upload) (*document.Document, error)
	Messages(ctx context.Context, userID, id uuid.UUID) ([]ChatMessage, error)
	Ask(ctx context.Context, userID, id uuid.UUID, question string) (*ChatMessage, error)
	Names(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type notebookService struct {
	repo      NotebookRepository
	documents DocumentStore
	gateway   aigateway.Service
	chats     *chatLog
}

func NewService(repo NotebookRepository, documents DocumentStore, gateway aigateway.Service) Service {
	return &notebookService{
		repo:      repo,
		documents: documents,
		gateway:   gateway,
		chats:     newChatLog(time.Now),
	}
}

func (s *notebookService) Create(ctx context.Context, userID uuid.UUID, name string) (*Notebook, error) {
	log := config.WithContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	n := &Notebook{ID: uuid.New(), UserID: userID, Name: name}
	if err := s.repo.Create(ctx, n); err != nil {
		log.WithError(err).Error("Erro ao criar notebook")
		return nil, err
	}

	log.WithField("notebook_id", n.ID).Info("Notebook criado com sucesso")
	return n, nil
}

func (s *notebookService) List(ctx context.Context, userID uuid.UUID) ([]*Notebook, error) {
	notebooks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar notebooks")
		return nil, err
	}
	return notebooks, nil
}

func (s *notebookService) find(ctx context.Context, userID, id uuid.UUID) (*Notebook, error) {
	n, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao buscar notebook")
		return nil, err
	}
	if n == nil {
		return nil, ErrNotebookNotFound
	}
	return n, nil
}

func (s *notebookService) Get(ctx context.Context, userID, id uuid.UUID) (*NotebookView, error) {
	n, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.GetMany(ctx, userID, n.DocumentIDs)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*document.Document{}
	}
	return &NotebookView{Notebook: n, Documents: docs}, nil
}

// AddDocument ingests the upload into the notebook's folder and links it. A
// failed ingestion leaves the notebook unchanged.
func (s *notebookService) AddDocument(ctx context.Context, userID, id uuid.UUID, upload document.Upload) (*document.Document, error) {
	log := config.WithContext(ctx).WithField("notebook_id", id)

	n, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Ingest(ctx, userID, upload, n.Name)
	if err != nil {
		log.WithError(err).Warn("Documento não adicionado ao notebook")
		return nil, err
	}

	if err := s.repo.AppendDocument(ctx, userID, id, doc.ID); err != nil {
		log.WithError(err).Error("Erro ao vincular documento ao notebook")
		return nil, err
	}

	log.WithField("document_id", doc.ID).Info("Documento adicionado ao notebook")
	return doc, nil
}

func (s *notebookService) Messages(ctx context.Context, userID, id uuid.UUID) ([]ChatMessage, error) {
	if _, err := s.find(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.chats.history(id), nil
}

// Ask runs one chat turn. On failure the user-facing error text is recorded
// as the model's reply and the error is returned.
func (s *notebookService) Ask(ctx context.Context, userID, id uuid.UUID, question string) (*ChatMessage, error) {
	log := config.WithContext(ctx).WithField("notebook_id", id)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	n, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !s.chats.begin(id, question) {
		log.Warn("Pergunta recusada: turno anterior em andamento")
		return nil, ErrTurnInProgress
	}

	reply, err := s.answer(ctx, userID, n, question)
	if err != nil {
		log.WithError(err).Error("Erro ao responder pergunta do chat")
		msg := s.chats.finish(id, ChatMessage{Role: RoleModel, Content: aigateway.UserMessage(err), Failed: true})
		return &msg, err
	}

	msg := s.chats.finish(id, ChatMessage{
		Role:     RoleModel,
		Content:  reply.Answer,
		Sources:  reply.Sources,
		Segments: Segments(reply.Answer, reply.Sources),
	})
	return &msg, nil
}

func (s *notebookService) answer(ctx context.Context, userID uuid.UUID, n *Notebook, question string) (*aigateway.ChatReply, error) {
	docs, err := s.documents.GetMany(ctx, userID, n.DocumentIDs)
	if err != nil {
		return nil, err
	}

	contextDocs := make([]aigateway.ContextDocument, 0, len(docs))
	for _, d := range docs {
		contextDocs = append(contextDocs, aigateway.ContextDocument{ID: d.ID, Name: d.Name, Content: d.Content})
	}
	return s.gateway.Chat(ctx, question, contextDocs)
}

func (s *notebookService) Names(ctx context.Context, userID uuid.UUID) ([]string, error) {
	notebooks, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(notebooks))
	for _, n := range notebooks {
		names = append(names, n.Name)
	}
	return names, nil
}
