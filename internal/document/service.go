package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/pdftext"
)

var (
	ErrDocumentNotFound = errors.New("documento não encontrado")
	ErrDraftNotFound    = errors.New("rascunho não encontrado ou expirado")
	ErrInvalidTitle     = errors.New("o título do resumo não pode ficar vazio")
)

// ExtractFunc turns PDF bytes into text.
type ExtractFunc func(data []byte) (pdftext.Text, error)

type Service interface {
	Analyze(ctx context.Context, userID uuid.UUID, upload Upload, folder string) (*Draft, error)
	RenameDraft(ctx context.Context, userID, draftID uuid.UUID, title string) (*Draft, error)
	SaveDraft(ctx context.Context, userID, draftID uuid.UUID) (*Document, error)
	Ingest(ctx context.Context, userID uuid.UUID, upload Upload, folder string) (*Document, error)
	List(ctx context.Context, userID uuid.UUID, folder string) ([]*Document, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Document, error)
	GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Document, error)
	QuestionPool(ctx context.Context, userID uuid.UUID, topic string) ([]aigateway.Question, error)
	Topics(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type documentService struct {
	repo    DocumentRepository
	gateway aigateway.Service
	extract ExtractFunc
	drafts  *draftCache
}

func NewService(repo DocumentRepository, gateway aigateway.Service, extract ExtractFunc) Service {
	return newService(repo, gateway, extract, time.Now)
}

func newService(repo DocumentRepository, gateway aigateway.Service, extract ExtractFunc, now func() time.Time) *documentService {
	return &documentService{
		repo:    repo,
		gateway: gateway,
		extract: extract,
		drafts:  newDraftCache(DraftTTL, now),
	}
}

// build extracts the upload and runs the AI analysis. Nothing is stored.
func (s *documentService) build(ctx context.Context, userID uuid.UUID, upload Upload, folder string) (*Document, error) {
	log := config.WithContext(ctx).WithField("file", upload.Name)

	if err := pdftext.CheckPDF(upload.ContentType, upload.Data); err != nil {
		log.Warn("Arquivo rejeitado: não é um PDF")
		return nil, err
	}

	text, err := s.extract(upload.Data)
	if err != nil {
		log.WithError(err).Error("Erro ao extrair texto do PDF")
		return nil, err
	}
	content := text.String()

	analysis, err := s.gateway.AnalyzeDocument(ctx, content)
	if err != nil {
		log.WithError(err).Error("Erro ao analisar documento com IA")
		return nil, fmt.Errorf("analisar %s: %w", upload.Name, err)
	}

	docID := uuid.New()
	return &Document{
		ID:      docID,
		UserID:  userID,
		Name:    upload.Name,
		Content: content,
		Folder:  folder,
		Summary: &Summary{
			ID:         uuid.New(),
			UserID:     userID,
			Title:      "Resumo de " + upload.Name,
			Content:    analysis.Summary,
			SourceID:   docID,
			SourceType: SourceTypePDF,
			Folder:     folder,
		},
		Questions: analysis.Questions,
	}, nil
}

func (s *documentService) Analyze(ctx context.Context, userID uuid.UUID, upload Upload, folder string) (*Draft, error) {
	log := config.WithContext(ctx)

	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = DefaultFolder
	}

	doc, err := s.build(ctx, userID, upload, folder)
	if err != nil {
		return nil, err
	}

	draft := s.drafts.put(userID, *doc)
	log.WithField("draft_id", draft.ID).Info("Rascunho de documento criado")
	return &draft, nil
}

func (s *documentService) RenameDraft(ctx context.Context, userID, draftID uuid.UUID, title string) (*Draft, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	draft, ok := s.drafts.update(userID, draftID, func(d *Document) {
		d.Summary.Title = title
	})
	if !ok {
		config.WithContext(ctx).WithField("draft_id", draftID).Warn("Rascunho não encontrado para renomear")
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

func (s *documentService) SaveDraft(ctx context.Context, userID, draftID uuid.UUID) (*Document, error) {
	log := config.WithContext(ctx).WithField("draft_id", draftID)

	draft, ok := s.drafts.take(userID, draftID)
	if !ok {
		log.Warn("Rascunho não encontrado para salvar")
		return nil, ErrDraftNotFound
	}

	doc := draft.Document
	if err := s.repo.Create(ctx, &doc); err != nil {
		s.drafts.restore(userID, draft)
		log.WithError(err).Error("Erro ao salvar documento")
		return nil, err
	}

	log.WithField("document_id", doc.ID).Info("Documento salvo com sucesso")
	return &doc, nil
}

func (s *documentService) Ingest(ctx context.Context, userID uuid.UUID, upload Upload, folder string) (*Document, error) {
	log := config.WithContext(ctx)

	doc, err := s.build(ctx, userID, upload, folder)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		log.WithError(err).Error("Erro ao salvar documento")
		return nil, err
	}

	log.WithField("document_id", doc.ID).Info("Documento adicionado com sucesso")
	return doc, nil
}

func (s *documentService) List(ctx context.Context, userID uuid.UUID, folder string) ([]*Document, error) {
	docs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar documentos")
		return nil, err
	}
	if folder == "" || folder == FolderAll {
		return docs, nil
	}

	filtered := make([]*Document, 0, len(docs))
	for _, d := range docs {
		if d.Folder == folder {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (s *documentService) Get(ctx context.Context, userID, id uuid.UUID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao buscar documento")
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) GetMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*Document, error) {
	return s.repo.ListByIDs(ctx, userID, ids)
}

func (s *documentService) QuestionPool(ctx context.Context, userID uuid.UUID, topic string) ([]aigateway.Question, error) {
	docs, err := s.List(ctx, userID, topic)
	if err != nil {
		return nil, err
	}

	var pool []aigateway.Question
	for _, d := range docs {
		pool = append(pool, d.Questions...)
	}
	return pool, nil
}

// Topics lists, in first-seen order, the folders holding at least one question.
func (s *documentService) Topics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	docs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	topics := []string{}
	for _, d := range docs {
		if len(d.Questions) == 0 || seen[d.Folder] {
			continue
		}
		seen[d.Folder] = true
		topics = append(topics, d.Folder)
	}
	return topics, nil
}
